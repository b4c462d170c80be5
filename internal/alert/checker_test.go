package alert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptofolio-telegram-bot/internal/types"
)

type fakePrices struct {
	prices map[string]float64
	err    error
	calls  [][]string
}

func (f *fakePrices) GetPrices(assets []string) (map[string]float64, error) {
	f.calls = append(f.calls, assets)
	if f.err != nil {
		return nil, f.err
	}
	return f.prices, nil
}

type fakeNotifier struct {
	err      error
	sent     []types.Notification
	onNotify func(n types.Notification)
}

func (f *fakeNotifier) Notify(n types.Notification) error {
	f.sent = append(f.sent, n)
	if f.onNotify != nil {
		f.onNotify(n)
	}
	return f.err
}

func newTestChecker(registry *Registry, prices *fakePrices, notifier *fakeNotifier) *Checker {
	return NewChecker(registry, prices, notifier, CheckerConfig{})
}

func TestFiresAtExactTarget(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(1, rule("eth", 2000, types.ConditionAbove)))

	prices := &fakePrices{prices: map[string]float64{"eth": 2000}}
	notifier := &fakeNotifier{}
	newTestChecker(registry, prices, notifier).CheckOnce()

	require.Len(t, notifier.sent, 1)
	require.Equal(t, types.Notification{
		ChatID:    1,
		Asset:     "eth",
		Condition: types.ConditionAbove,
		Target:    2000,
		Price:     2000,
	}, notifier.sent[0])
	require.Empty(t, registry.List(1), "fired rule must leave the registry")
}

func TestDoesNotFireBelowTarget(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(1, rule("eth", 2000, types.ConditionAbove)))

	prices := &fakePrices{prices: map[string]float64{"eth": 1999.99}}
	notifier := &fakeNotifier{}
	newTestChecker(registry, prices, notifier).CheckOnce()

	require.Empty(t, notifier.sent)
	require.Len(t, registry.List(1), 1)
}

func TestBelowConditionFires(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(1, rule("btc", 40000, types.ConditionBelow)))

	prices := &fakePrices{prices: map[string]float64{"btc": 39000}}
	notifier := &fakeNotifier{}
	newTestChecker(registry, prices, notifier).CheckOnce()

	require.Len(t, notifier.sent, 1)
	require.Empty(t, registry.List(1))
}

func TestMissingPriceKeepsRule(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(1, rule("doge", 1, types.ConditionAbove)))
	require.NoError(t, registry.Add(1, rule("eth", 2000, types.ConditionAbove)))

	// Snapshot omits doge entirely, the tick must still finish for eth.
	prices := &fakePrices{prices: map[string]float64{"eth": 2500}}
	notifier := &fakeNotifier{}
	newTestChecker(registry, prices, notifier).CheckOnce()

	require.Len(t, notifier.sent, 1)
	require.Equal(t, "eth", notifier.sent[0].Asset)

	remaining := registry.List(1)
	require.Len(t, remaining, 1)
	require.Equal(t, "doge", remaining[0].Asset)
}

func TestSingleProviderCallPerTick(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(1, rule("btc", 1, types.ConditionBelow)))
	require.NoError(t, registry.Add(1, rule("btc", 2, types.ConditionBelow)))
	require.NoError(t, registry.Add(2, rule("btc", 3, types.ConditionBelow)))
	require.NoError(t, registry.Add(2, rule("eth", 4, types.ConditionBelow)))
	require.NoError(t, registry.Add(3, rule("eth", 5, types.ConditionBelow)))

	prices := &fakePrices{prices: map[string]float64{}}
	newTestChecker(registry, prices, &fakeNotifier{}).CheckOnce()

	require.Len(t, prices.calls, 1, "five rules over two assets must cost one provider call")
	require.Equal(t, []string{"btc", "eth"}, prices.calls[0])
}

func TestProviderErrorSkipsTick(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(1, rule("btc", 50000, types.ConditionAbove)))

	prices := &fakePrices{err: errors.New("provider unreachable")}
	notifier := &fakeNotifier{}
	checker := newTestChecker(registry, prices, notifier)

	require.NotPanics(t, checker.CheckOnce)
	require.Empty(t, notifier.sent)
	require.Len(t, registry.List(1), 1, "rules survive a failed tick")
}

func TestFailedDispatchStillRemovesRule(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(1, rule("btc", 1, types.ConditionAbove)))

	prices := &fakePrices{prices: map[string]float64{"btc": 2}}
	notifier := &fakeNotifier{err: errors.New("dispatch failed")}
	newTestChecker(registry, prices, notifier).CheckOnce()

	require.Len(t, notifier.sent, 1)
	require.Empty(t, registry.List(1))
}

func TestConcurrentRemovalDoesNotDuplicateFire(t *testing.T) {
	registry := NewRegistry()
	fired := rule("btc", 1, types.ConditionAbove)
	require.NoError(t, registry.Add(1, fired))
	require.NoError(t, registry.Add(1, fired))

	prices := &fakePrices{prices: map[string]float64{"btc": 2}}
	notifier := &fakeNotifier{}
	// Simulate a user deleting the second identical rule while the
	// first notification is in flight.
	notifier.onNotify = func(types.Notification) {
		registry.Remove(1, fired)
	}
	newTestChecker(registry, prices, notifier).CheckOnce()

	require.Len(t, notifier.sent, 1, "a rule removed mid-tick must not be announced")
	require.Empty(t, registry.List(1))
}

func TestEmptyRegistrySkipsProvider(t *testing.T) {
	prices := &fakePrices{}
	newTestChecker(NewRegistry(), prices, &fakeNotifier{}).CheckOnce()
	require.Empty(t, prices.calls)
}
