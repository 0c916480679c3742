package usage

import "github.com/shopspring/decimal"

// modelRate is USD per 1K tokens, split by direction.
type modelRate struct {
	prompt     decimal.Decimal
	completion decimal.Decimal
}

func rate(prompt, completion string) modelRate {
	return modelRate{
		prompt:     decimal.RequireFromString(prompt),
		completion: decimal.RequireFromString(completion),
	}
}

// modelRates holds published list prices. Unknown models fall back to their
// provider's default so cost reporting degrades instead of dropping records.
var modelRates = map[string]modelRate{
	"gpt-4o":                    rate("0.0025", "0.01"),
	"gpt-4o-mini":               rate("0.00015", "0.0006"),
	"gpt-4.1":                   rate("0.002", "0.008"),
	"gpt-4.1-mini":              rate("0.0004", "0.0016"),
	"claude-sonnet-4-20250514":  rate("0.003", "0.015"),
	"claude-3-5-haiku-20241022": rate("0.0008", "0.004"),
	"gemini-2.0-flash":          rate("0.0001", "0.0004"),
	"gemini-2.0-flash-lite":     rate("0.000075", "0.0003"),
	"gemini-1.5-pro":            rate("0.00125", "0.005"),
}

var providerDefaultRates = map[string]modelRate{
	"openai":    rate("0.0025", "0.01"),
	"anthropic": rate("0.003", "0.015"),
	"google":    rate("0.00125", "0.005"),
}

var perThousand = decimal.NewFromInt(1000)

// CostFor prices a call from its token counts. Unknown provider and model
// both price at zero.
func CostFor(provider, model string, promptTokens, completionTokens int) decimal.Decimal {
	r, ok := modelRates[model]
	if !ok {
		r, ok = providerDefaultRates[provider]
		if !ok {
			return decimal.Zero
		}
	}

	promptCost := r.prompt.Mul(decimal.NewFromInt(int64(promptTokens))).Div(perThousand)
	completionCost := r.completion.Mul(decimal.NewFromInt(int64(completionTokens))).Div(perThousand)
	return promptCost.Add(completionCost)
}
