package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"cryptofolio-telegram-bot/internal/portfolio"
	"cryptofolio-telegram-bot/internal/types"
)

// PriceSource resolves current USD prices for a set of symbols.
type PriceSource interface {
	GetPrices(assets []string) (map[string]float64, error)
}

// CommandPortfolioAdd records a position for the chat.
func CommandPortfolioAdd(store *portfolio.Store, chatID int64, asset, amount string) (string, error) {
	log.Debugf("processing command /portfolio add %s %s", asset, amount)

	quantity, err := decimal.NewFromString(amount)
	if err != nil {
		return "", types.Invalidf("%q is not a valid amount", amount)
	}
	if err := store.Add(chatID, asset, quantity); err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"✅ Added *%s %s* to your portfolio\\.",
		escapeMarkdownV2(quantity.String()),
		escapeMarkdownV2(strings.ToUpper(asset)),
	), nil
}

// CommandPortfolioView lists the chat's holdings with their current
// value. All holdings are priced through a single provider call.
// Assets the provider does not know are listed without a price and
// left out of the total.
func CommandPortfolioView(store *portfolio.Store, prices PriceSource, chatID int64) (string, error) {
	log.Debug("processing command /portfolio view")

	holdings := store.View(chatID)
	if len(holdings) == 0 {
		return "Your portfolio is empty\\. Use `/portfolio add <coin> <amount>` to add coins\\.", nil
	}

	assets := make([]string, 0, len(holdings))
	for _, h := range holdings {
		assets = append(assets, h.Asset)
	}

	snapshot, err := prices.GetPrices(assets)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("*📊 Your portfolio:*\n\n")

	total := decimal.Zero
	for _, h := range holdings {
		p, ok := snapshot[h.Asset]
		if !ok {
			b.WriteString(fmt.Sprintf(
				"▫️*%s*  %s  \\|  price unavailable\n",
				escapeMarkdownV2(strings.ToUpper(h.Asset)),
				escapeMarkdownV2(h.Quantity.String()),
			))
			continue
		}
		value := h.Quantity.Mul(decimal.NewFromFloat(p))
		total = total.Add(value)
		b.WriteString(fmt.Sprintf(
			"▫️*%s*  %s  \\|  $%s\n",
			escapeMarkdownV2(strings.ToUpper(h.Asset)),
			escapeMarkdownV2(h.Quantity.String()),
			formatPriceUS(value.InexactFloat64(), true),
		))
	}

	b.WriteString(fmt.Sprintf("\n*Total value:*  $%s", formatPriceUS(total.InexactFloat64(), true)))
	return b.String(), nil
}
