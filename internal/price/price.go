package price

import (
	"strings"

	"github.com/coinpaprika/coinpaprika-api-go-client/v2/coinpaprika"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"cryptofolio-telegram-bot/config"
)

// ErrNotFound means the provider does not recognize the asset symbol.
// It is distinct from a provider failure.
var ErrNotFound = errors.New("asset not found")

// ProviderError wraps any transport or API level failure of the market
// data provider. Callers decide whether to retry, the client never does.
type ProviderError struct {
	cause error
}

func (e *ProviderError) Error() string {
	return "price provider: " + e.cause.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.cause
}

// IsNotFound reports whether err is the unknown-asset case.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// tickerLister is the piece of the CoinPaprika client we consume.
type tickerLister interface {
	List(options *coinpaprika.TickersOptions) ([]*coinpaprika.Ticker, error)
}

// Client fetches spot prices from CoinPaprika, quoted in USD.
type Client struct {
	tickers tickerLister
}

func NewClient() *Client {
	apiProKey := config.GetString("api_pro_key")
	if apiProKey != "" {
		return &Client{tickers: &coinpaprika.NewClient(nil, coinpaprika.WithAPIKey(apiProKey)).Tickers}
	}
	return &Client{tickers: &coinpaprika.NewClient(nil).Tickers}
}

// GetPrices returns current USD prices for the requested ticker symbols.
// One provider call is made regardless of how many symbols are asked for.
// Symbols the provider does not know are omitted from the result, callers
// must treat a missing key as "unknown" rather than an error.
func (c *Client) GetPrices(assets []string) (map[string]float64, error) {
	if len(assets) == 0 {
		return map[string]float64{}, nil
	}

	tickers, err := c.tickers.List(&coinpaprika.TickersOptions{Quotes: "USD"})
	if err != nil {
		return nil, &ProviderError{cause: errors.Wrap(err, "list tickers")}
	}

	want := make(map[string]bool, len(assets))
	for _, a := range assets {
		want[Normalize(a)] = true
	}

	// Tickers come back rank-ordered, so the first match per symbol is
	// the dominant coin for that ticker.
	prices := make(map[string]float64, len(assets))
	for _, t := range tickers {
		if t.Symbol == nil {
			continue
		}
		symbol := Normalize(*t.Symbol)
		if !want[symbol] {
			continue
		}
		if _, seen := prices[symbol]; seen {
			continue
		}
		quote, ok := t.Quotes["USD"]
		if !ok || quote.Price == nil {
			continue
		}
		prices[symbol] = *quote.Price
	}

	log.Debugf("resolved %d/%d symbols: %s", len(prices), len(assets), spew.Sdump(prices))
	return prices, nil
}

// GetPrice returns the current USD price for a single ticker symbol.
func (c *Client) GetPrice(asset string) (float64, error) {
	prices, err := c.GetPrices([]string{asset})
	if err != nil {
		return 0, err
	}
	p, ok := prices[Normalize(asset)]
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "symbol %q", asset)
	}
	return p, nil
}

// Normalize lower-cases and trims an asset symbol so "BTC" and "btc"
// name the same entry everywhere.
func Normalize(asset string) string {
	return strings.ToLower(strings.TrimSpace(asset))
}
