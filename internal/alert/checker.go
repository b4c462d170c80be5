package alert

import (
	"context"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"cryptofolio-telegram-bot/internal/types"
)

// PriceSource is the slice of the price client the checker needs.
type PriceSource interface {
	GetPrices(assets []string) (map[string]float64, error)
}

// Notifier delivers a fired alert to its owner's private chat.
type Notifier interface {
	Notify(n types.Notification) error
}

// CheckerConfig wires the checker's collaborators.
type CheckerConfig struct {
	Interval time.Duration
	// Optional counters, nil is fine.
	Fired          prometheus.Counter
	ProviderErrors prometheus.Counter
}

// Checker is the periodic alert evaluator. Each tick snapshots the
// registry, fetches one price set covering every watched asset, fires
// matching rules and retires them. Ticks are strictly sequential.
type Checker struct {
	registry *Registry
	prices   PriceSource
	notifier Notifier
	cfg      CheckerConfig
}

func NewChecker(registry *Registry, prices PriceSource, notifier Notifier, cfg CheckerConfig) *Checker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Checker{
		registry: registry,
		prices:   prices,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Run blocks until ctx is cancelled, evaluating alerts once per
// interval. A tick that fails never kills the loop.
func (c *Checker) Run(ctx context.Context) {
	log.Infof("alert checker started, interval %s", c.cfg.Interval)

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("alert checker stopped")
			return
		case <-ticker.C:
			c.CheckOnce()
		}
	}
}

// CheckOnce runs a single evaluation tick.
func (c *Checker) CheckOnce() {
	snapshot := c.registry.Snapshot()
	if len(snapshot) == 0 {
		return
	}

	prices, err := c.prices.GetPrices(watchedAssets(snapshot))
	if err != nil {
		// Nothing to evaluate against, every rule waits for the next tick.
		log.Errorf("alert tick: %v", err)
		if c.cfg.ProviderErrors != nil {
			c.cfg.ProviderErrors.Inc()
		}
		return
	}

	for chatID, rules := range snapshot {
		for _, rule := range rules {
			current, ok := prices[rule.Asset]
			if !ok {
				log.Debugf("no price for %s, rule kept for next tick", rule.Asset)
				continue
			}
			if !rule.Triggered(current) {
				continue
			}
			c.fire(chatID, rule, current)
		}
	}
}

// fire retires the rule and notifies its owner. The rule is claimed by
// removing it first, so a rule the user deleted mid-tick is not
// announced and nothing fires twice. A failed dispatch is logged, not
// retried.
func (c *Checker) fire(chatID int64, rule types.Rule, current float64) {
	if !c.registry.Remove(chatID, rule) {
		return
	}

	if err := c.notifier.Notify(types.Notification{
		ChatID:    chatID,
		Asset:     rule.Asset,
		Condition: rule.Condition,
		Target:    rule.Target,
		Price:     current,
	}); err != nil {
		log.Errorf("alert dispatch to chat %d: %v", chatID, err)
	}

	if c.cfg.Fired != nil {
		c.cfg.Fired.Inc()
	}
	log.Infof("alert fired: chat %d %s %s %g at %g", chatID, rule.Asset, rule.Condition, rule.Target, current)
}

// watchedAssets collects the distinct symbols referenced by a snapshot,
// sorted so the provider request is deterministic.
func watchedAssets(snapshot map[int64][]types.Rule) []string {
	seen := make(map[string]bool)
	var assets []string
	for _, rules := range snapshot {
		for _, rule := range rules {
			if !seen[rule.Asset] {
				seen[rule.Asset] = true
				assets = append(assets, rule.Asset)
			}
		}
	}
	sort.Strings(assets)
	return assets
}
