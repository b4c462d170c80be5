package commands

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/coinpaprika/coinpaprika-api-go-client/v2/coinpaprika"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const topListSize = 10

// CommandTop renders the top coins by market cap.
func CommandTop() (string, error) {
	log.Debug("processing command /top")

	tickers, err := paprikaClient.Tickers.List(&coinpaprika.TickersOptions{Quotes: "USD"})
	if err != nil {
		return "", errors.Wrap(err, "command /top")
	}

	var ranked []*coinpaprika.Ticker
	for _, t := range tickers {
		if t.Rank == nil || *t.Rank < 1 || *t.Rank > topListSize {
			continue
		}
		if t.Name == nil || t.Symbol == nil {
			continue
		}
		if _, ok := t.Quotes["USD"]; !ok {
			continue
		}
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool { return *ranked[i].Rank < *ranked[j].Rank })

	if len(ranked) == 0 {
		return "", errors.New("command /top: empty ticker list")
	}

	var b strings.Builder
	b.WriteString("*Top coins by market cap:*\n\n")
	for _, t := range ranked {
		usd := t.Quotes["USD"]
		mcap := "n/a"
		if usd.MarketCap != nil {
			mcap = "$" + escapeMarkdownV2(humanize.Comma(int64(math.Round(*usd.MarketCap))))
		}
		price := "n/a"
		if usd.Price != nil {
			price = "$" + formatPriceUS(*usd.Price, true)
		}
		b.WriteString(fmt.Sprintf(
			"%d\\. *%s \\(%s\\)*  %s  \\|  MCap %s\n",
			*t.Rank,
			escapeMarkdownV2(*t.Name),
			escapeMarkdownV2(*t.Symbol),
			price,
			mcap,
		))
	}
	return b.String(), nil
}
