package testgen

// Pipeline tuning defaults. The chunk size and shard threshold come from
// observed model behavior: recall degrades past roughly 15 pages per
// request, and documents of 20 pages or fewer still fit one call.
const (
	DefaultChunkSize      = 15
	DefaultShardThreshold = 20
	DefaultMaxTokens      = 70000
	DefaultTemperature    = 1.0

	// Per-chunk budgets add a fixed overhead on top of the per-question
	// allowance and never drop below the floor.
	tokenBudgetFloor    = 4096
	tokenBudgetOverhead = 1000
)

// Config tunes the generation pipeline.
type Config struct {
	// ChunkSize is the page width of one parallel chunk.
	ChunkSize int

	// ShardThreshold is the page count above which a document is split
	// into parallel chunks. At or below it, one call covers the whole
	// document.
	ShardThreshold int

	// MaxTokens caps the per-call output token budget.
	MaxTokens int

	// Temperature is the sampling temperature for every model call.
	Temperature float64
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:      DefaultChunkSize,
		ShardThreshold: DefaultShardThreshold,
		MaxTokens:      DefaultMaxTokens,
		Temperature:    DefaultTemperature,
	}
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ShardThreshold <= 0 {
		c.ShardThreshold = DefaultShardThreshold
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	return c
}

// tokenBudget computes the output token budget for one call: a
// per-question allowance by type and difficulty, times the question
// quota, plus overhead, floored and capped.
func tokenBudget(qt, difficulty string, questionCount, maxTokens int) int {
	var perQuestion int
	switch qt {
	case "match_the_column":
		perQuestion = 3500
	case "assertion_reason":
		if difficulty == "hard" {
			perQuestion = 2500
		} else {
			perQuestion = 2000
		}
	default:
		if difficulty == "hard" {
			perQuestion = 2500
		} else {
			perQuestion = 1500
		}
	}

	budget := questionCount*perQuestion + tokenBudgetOverhead
	if budget < tokenBudgetFloor {
		budget = tokenBudgetFloor
	}
	if maxTokens > 0 && budget > maxTokens {
		budget = maxTokens
	}
	return budget
}
