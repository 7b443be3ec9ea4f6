package testgen

import (
	"fmt"
	"math"

	"github.com/abhisek/examforge/internal/llm"
)

// usdToINR is the fixed conversion rate applied to the USD pricing
// table.
const usdToINR = 87.0

// Cost is the INR cost estimate for one generation run, with display
// rate strings.
type Cost struct {
	InputCost  float64 `json:"input_cost"`
	OutputCost float64 `json:"output_cost"`
	TotalCost  float64 `json:"total_cost"`
	InputRate  string  `json:"input_rate"`
	OutputRate string  `json:"output_rate"`
}

// CalculateCost converts token usage into an INR estimate using the
// per-million-token rates for the given model. Unknown models fall back
// to the default pricing. Pure arithmetic, no failure modes.
func CalculateCost(modelID string, usage llm.Usage) Cost {
	rates := llm.LookupCost(modelID)

	inputUSD := float64(usage.InputTokens) / 1_000_000 * rates.InputPerMTok
	outputUSD := float64(usage.OutputTokens) / 1_000_000 * rates.OutputPerMTok

	inputINR := round4(inputUSD * usdToINR)
	outputINR := round4(outputUSD * usdToINR)

	return Cost{
		InputCost:  inputINR,
		OutputCost: outputINR,
		TotalCost:  round4(inputINR + outputINR),
		InputRate:  fmt.Sprintf("₹%.1f/1M tokens", rates.InputPerMTok*usdToINR),
		OutputRate: fmt.Sprintf("₹%.1f/1M tokens", rates.OutputPerMTok*usdToINR),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
