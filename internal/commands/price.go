package commands

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func CommandPrice(argument string) (string, error) {
	log.Debugf("processing command /p with argument :%s", argument)

	ticker, err := GetTickerByQuery(argument)
	if err != nil {
		return "", errors.Wrap(err, "command /p")
	}

	if ticker.Name == nil || ticker.ID == nil {
		return "", errors.New("command /p: ticker has no id")
	}

	usd, ok := ticker.Quotes["USD"]
	if !ok || usd.Price == nil {
		return fmt.Sprintf("This coin is not actively traded and doesn't have current price \n"+
			"For more details visit [coinpaprika.com](https://coinpaprika.com/coin/%s)", *ticker.ID), nil
	}

	change := "n/a"
	if usd.PercentChange24h != nil {
		change = escapeMarkdownV2(fmt.Sprintf("%+.2f%%", *usd.PercentChange24h))
	}

	return fmt.Sprintf(
		"*%s price:*\n\n▫️`$%s` *USD*\n▫️24h: *%s*\n\n[See %s on CoinPaprika 🌶](https://coinpaprika.com/coin/%s)",
		escapeMarkdownV2(*ticker.Name),
		formatPriceUS(*usd.Price, true),
		change,
		escapeMarkdownV2(*ticker.Name),
		*ticker.ID,
	), nil
}
