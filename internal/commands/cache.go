package commands

import (
	"time"
)

// Chart rendering is slow enough to be worth caching between repeated
// requests for the same coin.
type cacheItem struct {
	ChartData  []byte
	Caption    string
	Expiration time.Time
}

var chartCache = make(map[string]*cacheItem)

func cacheGet(ticker string) (*cacheItem, bool) {
	if item, found := chartCache[ticker]; found && time.Now().Before(item.Expiration) {
		return item, true
	}
	return nil, false
}

func cacheSet(ticker string, chartData []byte, caption string, duration time.Duration) {
	chartCache[ticker] = &cacheItem{
		ChartData:  chartData,
		Caption:    caption,
		Expiration: time.Now().Add(duration),
	}
}
