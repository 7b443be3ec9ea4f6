package testgen

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/examforge/internal/llm"
	"github.com/abhisek/examforge/internal/pdf"
	"github.com/abhisek/examforge/internal/prompts"
)

// documentName is the filename presented to the model for every
// attachment.
const documentName = "textbook.pdf"

// maxQuestionCount bounds one generation request.
const maxQuestionCount = 100

// Service runs the full generation pipeline: plan, slice, call, parse,
// normalize, account.
type Service struct {
	provider   llm.Provider
	registry   *prompts.Registry
	normalizer *Normalizer
	cfg        Config
	log        zerolog.Logger
}

// NewService builds a Service. The config is defaulted field-wise, so a
// zero Config selects standard behavior.
func NewService(provider llm.Provider, registry *prompts.Registry, cfg Config, log zerolog.Logger) *Service {
	return &Service{
		provider:   provider,
		registry:   registry,
		normalizer: NewNormalizer(log),
		cfg:        cfg.withDefaults(),
		log:        log,
	}
}

// Request is one generation request.
type Request struct {
	// PDF is the source document.
	PDF []byte

	Subject      string
	Difficulty   prompts.Difficulty
	QuestionType prompts.QuestionType

	// QuestionCount is the total number of questions requested, 1..100.
	QuestionCount int

	// MaxTokens optionally caps the per-call output token budget below
	// the service default.
	MaxTokens int
}

// Generate produces questions from the request's document. Documents at
// or below the shard threshold are handled with one model call; larger
// documents fan out one call per page chunk and merge the results.
// Chunk-local failures reduce the question count but never abort the
// batch. Configuration and document errors fail the whole call
// immediately.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if len(req.PDF) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	if req.QuestionCount < 1 || req.QuestionCount > maxQuestionCount {
		return nil, fmt.Errorf("question count %d out of range 1..%d", req.QuestionCount, maxQuestionCount)
	}

	// Combination requests are resolved to a concrete type per call.
	effectiveType := req.QuestionType
	if effectiveType == prompts.TypeCombination {
		effectiveType = prompts.TypeMCQ
	}

	// Fail fast on missing prompt configuration before any model call.
	if _, err := s.registry.Prompt(req.Subject, effectiveType, req.Difficulty, req.QuestionCount); err != nil {
		return nil, err
	}

	totalPages, err := pdf.PageCount(req.PDF)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.cfg.MaxTokens
	}

	s.log.Info().
		Int("pages", totalPages).
		Int("document_bytes", len(req.PDF)).
		Str("model", s.provider.ModelID()).
		Str("subject", req.Subject).
		Str("difficulty", string(req.Difficulty)).
		Str("question_type", string(req.QuestionType)).
		Int("question_count", req.QuestionCount).
		Msg("generation started")

	start := time.Now()
	var questions []*Question
	var usage llm.Usage
	parallelChunks := 1

	if totalPages > s.cfg.ShardThreshold {
		chunks := BuildChunks(totalPages, req.QuestionCount, s.cfg.ChunkSize)
		parallelChunks = len(chunks)
		questions, usage = s.generateSharded(ctx, req, effectiveType, chunks, maxTokens)

		// Chunk-local IDs restart at 1 per chunk; renumber across the
		// merged list.
		for i, q := range questions {
			q.QuestionID = i + 1
		}
	} else {
		batch, singleUsage, err := s.generateChunk(ctx, req, effectiveType, req.PDF, req.QuestionCount, maxTokens, "singleton", false)
		if err != nil {
			s.log.Error().Err(err).Msg("generation failed after retries")
			return &Result{Questions: []*Question{}, ParseError: "All API attempts failed"}, nil
		}
		usage = singleUsage
		if batch.Failed() {
			s.log.Error().Str("parse_error", batch.ParseError).Msg("response unusable after all repair attempts")
			return &Result{Questions: []*Question{}, RawResponse: batch.RawResponse, ParseError: batch.ParseError}, nil
		}
		questions = batch.Questions
	}

	s.normalizer.Normalize(questions)

	// The success shape always carries a questions array, even when
	// every chunk came back empty.
	if questions == nil {
		questions = []*Question{}
	}

	elapsed := math.Round(time.Since(start).Seconds()*10) / 10
	cost := CalculateCost(s.provider.ModelID(), usage)

	s.log.Info().
		Int("questions", len(questions)).
		Int("parallel_chunks", parallelChunks).
		Float64("elapsed_s", elapsed).
		Int("total_tokens", usage.TotalTokens).
		Float64("total_cost_inr", cost.TotalCost).
		Msg("generation complete")

	return &Result{
		Questions: questions,
		TestMetadata: &Metadata{
			Subject:            req.Subject,
			Difficulty:         string(req.Difficulty),
			QuestionType:       string(req.QuestionType),
			TotalQuestions:     len(questions),
			RequestedQuestions: req.QuestionCount,
			GenerationTime:     elapsed,
			ParallelChunks:     parallelChunks,
			TokenUsage: TokenReport{
				Generation:  usage,
				TotalInput:  usage.InputTokens,
				TotalOutput: usage.OutputTokens,
				GrandTotal:  usage.TotalTokens,
				Cost:        cost,
			},
		},
	}, nil
}

// generateSharded fans out one worker per chunk and merges their output
// in chunk order. Workers are fully independent: each owns its PDF slice
// and result slot, and a failed worker contributes zero questions
// without cancelling its siblings.
func (s *Service) generateSharded(ctx context.Context, req Request, effectiveType prompts.QuestionType, chunks []Chunk, maxTokens int) ([]*Question, llm.Usage) {
	type chunkResult struct {
		questions []*Question
		usage     llm.Usage
	}
	results := make([]chunkResult, len(chunks))

	var g errgroup.Group
	for i, chunk := range chunks {
		g.Go(func() error {
			label := chunk.Label()

			slice, err := pdf.Slice(req.PDF, chunk.StartPage, chunk.EndPage)
			if err != nil {
				s.log.Warn().Err(err).Str("chunk", label).Msg("slice failed, chunk skipped")
				return nil
			}

			batch, usage, err := s.generateChunk(ctx, req, effectiveType, slice, chunk.Questions, maxTokens, label, true)
			if err != nil {
				s.log.Warn().Err(err).Str("chunk", label).Msg("chunk failed after retries, contributing zero questions")
				return nil
			}
			results[i].usage = usage
			if batch.Failed() {
				s.log.Warn().Str("chunk", label).Str("parse_error", batch.ParseError).Msg("chunk response unusable, contributing zero questions")
				return nil
			}
			results[i].questions = batch.Questions
			s.log.Info().Str("chunk", label).Int("questions", len(batch.Questions)).Msg("chunk complete")
			return nil
		})
	}
	_ = g.Wait() // workers report failures through their result slot

	var merged []*Question
	var usage llm.Usage
	for _, r := range results {
		merged = append(merged, r.questions...)
		usage = usage.Add(r.usage)
	}
	return merged, usage
}

// generateChunk issues one model call for one document (or slice) and
// parses the response.
func (s *Service) generateChunk(ctx context.Context, req Request, effectiveType prompts.QuestionType, document []byte, quota, maxTokens int, label string, sharded bool) (*Batch, llm.Usage, error) {
	systemPrompt, err := s.registry.Prompt(req.Subject, effectiveType, req.Difficulty, quota)
	if err != nil {
		return nil, llm.Usage{}, err
	}

	budget := tokenBudget(string(req.QuestionType), string(req.Difficulty), quota, maxTokens)

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, label), llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildInstruction(quota, req.Difficulty, effectiveType, sharded)},
		},
		Document: &llm.Document{
			Name:     documentName,
			MIMEType: "application/pdf",
			Data:     document,
		},
		MaxTokens:   budget,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, llm.Usage{}, err
	}

	batch := ParseResponse(string(resp.Content))
	validateBatch(s.log, batch, label)
	return batch, resp.Usage, nil
}

// buildInstruction composes the per-call task instruction. Sharded calls
// cover a slice, so the coverage directive differs slightly from the
// whole-document form.
func buildInstruction(quota int, difficulty prompts.Difficulty, qt prompts.QuestionType, sharded bool) string {
	spread := "- Spread across ALL pages — first third, middle third, last third.\n"
	if sharded {
		spread = "- Spread across ALL pages of this PDF.\n"
	}
	return fmt.Sprintf(
		"Generate %d %s %s questions from this textbook PDF. "+
			"Each question MUST test a COMPLETELY DIFFERENT concept — "+
			"no two questions can cover the same topic, fact, or principle even if rephrased.\n\n"+
			"ACCURACY IS #1 PRIORITY — every correct_answer MUST match the PDF. If unsure, skip that question.\n\n"+
			"RULES:\n"+
			"- Each question tests a DIFFERENT concept from a DIFFERENT page/section.\n"+
			spread+
			"- Every question has EXACTLY ONE correct answer. The other 3 must be clearly wrong.\n"+
			"- NO ambiguous questions where 2 options could be correct.\n",
		quota, difficulty, strings.ReplaceAll(string(qt), "_", " "))
}
