package llm

import (
	"fmt"
	"strings"

	"github.com/Muditha98/LaptopInsights/internal/analytics"
)

// BuildInsightsPrompt renders the current catalog state and detected
// deals as a plain-text prompt. Only data present in the inputs goes
// into the prompt, so the model has nothing to hallucinate from.
func BuildInsightsPrompt(listings []analytics.Listing, deals []analytics.DealCandidate) string {
	var b strings.Builder

	b.WriteString("Current laptop prices:\n")
	for _, l := range listings {
		if l.Latest == nil {
			fmt.Fprintf(&b, "- %s %s (%s): no data yet\n", l.Product.Brand, l.Product.Model, l.Product.ProductID)
			continue
		}

		price := "price unknown"
		if l.Latest.Price != nil {
			price = fmt.Sprintf("%.2f %s", *l.Latest.Price, l.Latest.Currency)
		}
		fmt.Fprintf(&b, "- %s %s (%s): %s, %s", l.Product.Brand, l.Product.Model, l.Product.ProductID, price, l.Latest.Availability)
		if l.Latest.Promo != nil {
			fmt.Fprintf(&b, ", promo: %s", *l.Latest.Promo)
		}
		b.WriteString("\n")
	}

	if len(deals) > 0 {
		b.WriteString("\nDetected deals (below historical average):\n")
		for _, d := range deals {
			fmt.Fprintf(&b, "- %s %s: %.2f now vs %.2f average, %.1f%% off\n",
				d.Product.Brand, d.Product.Model, d.CurrentPrice, d.AvgPrice, d.DiscountPercent)
		}
	} else {
		b.WriteString("\nNo products are currently priced below their historical average.\n")
	}

	b.WriteString("\nSummarize the market state for a buyer deciding whether to purchase now or wait.")
	return b.String()
}
