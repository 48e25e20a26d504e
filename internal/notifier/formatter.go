package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockCompass/internal/model"
)

// FormatDigest formats a recommendation run as a Telegram message.
func FormatDigest(recs []model.Recommendation, at time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>StockCompass Picks</b> | %s\n\n", at.Format("2006-01-02")))

	if len(recs) == 0 {
		b.WriteString("No recommendations generated (not enough history in the dataset).\n")
		return b.String()
	}

	for i, rec := range recs {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> (%s) — %s %s\n",
			i+1, rec.Ticker, rec.Company, actionIcon(rec.Action), rec.Action))
		b.WriteString(fmt.Sprintf("   Confidence: %d%% | Risk: %s | Potential: %s\n",
			rec.Confidence, rec.RiskLevel, rec.PotentialReturn))
		b.WriteString(fmt.Sprintf("   Price: %.2f | %s\n", rec.Price, rec.Reason))
	}

	return b.String()
}

func actionIcon(a model.Action) string {
	switch a {
	case model.ActionBuy:
		return "🟢"
	case model.ActionSell:
		return "🔴"
	default:
		return "⚪"
	}
}
