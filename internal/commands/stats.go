package commands

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandStats renders the 24h market summary for a single coin.
func CommandStats(argument string) (string, error) {
	log.Debugf("processing command /s with argument :%s", argument)

	ticker, err := GetTickerByQuery(argument)
	if err != nil {
		return "", errors.Wrap(err, "command /s")
	}

	if ticker.Name == nil || ticker.ID == nil || ticker.Symbol == nil {
		return "", errors.New("command /s: ticker has no id")
	}

	usd, ok := ticker.Quotes["USD"]
	if !ok || usd.Price == nil {
		return fmt.Sprintf("This coin is not actively traded and doesn't have current price \n"+
			"For more details visit [coinpaprika.com](https://coinpaprika.com/coin/%s)", *ticker.ID), nil
	}

	pct := func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return escapeMarkdownV2(fmt.Sprintf("%+.2f%%", *v))
	}
	usdAmount := func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return "$" + escapeMarkdownV2(humanize.Comma(int64(math.Round(*v))))
	}

	return fmt.Sprintf(
		"*%s \\(%s\\) 24h stats:*\n\n"+
			"▫️Price:  *$%s*\n"+
			"▫️1h change:  *%s*\n"+
			"▫️24h change:  *%s*\n"+
			"▫️7d change:  *%s*\n"+
			"▫️24h volume:  *%s*\n"+
			"▫️Market cap:  *%s*\n\n"+
			"[See %s on CoinPaprika 🌶](https://coinpaprika.com/coin/%s)",
		escapeMarkdownV2(*ticker.Name),
		escapeMarkdownV2(*ticker.Symbol),
		formatPriceUS(*usd.Price, true),
		pct(usd.PercentChange1h),
		pct(usd.PercentChange24h),
		pct(usd.PercentChange7d),
		usdAmount(usd.Volume24h),
		usdAmount(usd.MarketCap),
		escapeMarkdownV2(*ticker.Name),
		*ticker.ID,
	), nil
}
