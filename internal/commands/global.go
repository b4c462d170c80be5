package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandGlobal renders market-wide statistics.
func CommandGlobal() (string, error) {
	log.Debug("processing command /global")

	global, err := paprikaClient.Global.Get()
	if err != nil {
		return "", errors.Wrap(err, "command /global")
	}

	mcap, volume, dominance, coins := "n/a", "n/a", "n/a", "n/a"
	if global.MarketCapUSD != nil {
		mcap = "$" + escapeMarkdownV2(humanize.Comma(int64(*global.MarketCapUSD)))
	}
	if global.Volume24hUSD != nil {
		volume = "$" + escapeMarkdownV2(humanize.Comma(int64(*global.Volume24hUSD)))
	}
	if global.BitcoinDominancePercentage != nil {
		dominance = escapeMarkdownV2(fmt.Sprintf("%.2f%%", *global.BitcoinDominancePercentage))
	}
	if global.CryptocurrenciesNumber != nil {
		coins = escapeMarkdownV2(humanize.Comma(*global.CryptocurrenciesNumber))
	}

	return fmt.Sprintf(
		"*🌐 Global crypto market:*\n\n"+
			"▫️Total market cap:  *%s*\n"+
			"▫️24h volume:  *%s*\n"+
			"▫️BTC dominance:  *%s*\n"+
			"▫️Cryptocurrencies:  *%s*",
		mcap, volume, dominance, coins,
	), nil
}
