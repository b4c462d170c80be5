package commands

import (
	"bytes"
	"fmt"
	"time"

	"github.com/coinpaprika/coinpaprika-api-go-client/v2/coinpaprika"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	chartLineColor = drawing.Color{R: 0, G: 122, B: 255, A: 255}
	chartFillColor = drawing.Color{R: 0, G: 122, B: 255, A: 40}
	chartTextColor = drawing.Color{R: 200, G: 200, B: 200, A: 255}
	chartBackColor = drawing.Color{R: 55, G: 55, B: 55, A: 255}
)

// CommandChart renders a 7 day price chart and its caption.
func CommandChart(argument string) ([]byte, string, error) {
	log.Debugf("processing command /c with argument :%s", argument)

	if cachedItem, found := cacheGet(argument); found {
		log.Debugf("returning cached chart for %s", argument)
		return cachedItem.ChartData, cachedItem.Caption, nil
	}

	c, tickers, err := GetHistoricalTickersByQuery(argument)
	if err != nil {
		return nil, "", errors.Wrap(err, "command /c")
	}

	if len(tickers) == 0 {
		return nil, fmt.Sprintf(
			"[%s \\(%s\\)](https://coinpaprika.com/coin/%s) is not actively traded and has no price history",
			escapeMarkdownV2(*c.Name), escapeMarkdownV2(*c.Symbol), *c.ID), nil
	}

	chartData, err := renderChart(c, tickers)
	if err != nil {
		return nil, "", errors.Wrap(err, "command /c")
	}

	caption := fmt.Sprintf(
		"%s 7 day price history \\| [See %s on CoinPaprika 🌶](https://coinpaprika.com/coin/%s)",
		escapeMarkdownV2(*c.Symbol), escapeMarkdownV2(*c.Name), *c.ID)

	cacheSet(argument, chartData, caption, 5*time.Minute)

	return chartData, caption, nil
}

func renderChart(c *coinpaprika.Coin, tickers []*coinpaprika.TickerHistorical) ([]byte, error) {
	var times []time.Time
	var prices []float64
	for _, t := range tickers {
		if t.Timestamp == nil || t.Price == nil {
			continue
		}
		times = append(times, *t.Timestamp)
		prices = append(prices, *t.Price)
	}
	if len(prices) < 2 {
		return nil, errors.New("not enough data points to render a chart")
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("%s 7 days price chart (%s)", *c.Name, *c.Symbol),
		TitleStyle: chart.Style{FontColor: chartTextColor},
		Width:      1200,
		Height:     500,
		Background: chart.Style{FillColor: chartBackColor},
		Canvas:     chart.Style{FillColor: chartBackColor},
		XAxis: chart.XAxis{
			Style:          chart.Style{FontColor: chartTextColor},
			ValueFormatter: chart.TimeValueFormatterWithFormat("02-Jan"),
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartTextColor},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return formatPriceUS(f, false)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: *c.Symbol,
				Style: chart.Style{
					StrokeColor: chartLineColor,
					StrokeWidth: 2,
					FillColor:   chartFillColor,
				},
				XValues: times,
				YValues: prices,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
