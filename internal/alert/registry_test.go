package alert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cryptofolio-telegram-bot/internal/types"
)

func rule(asset string, target float64, cond types.Condition) types.Rule {
	return types.Rule{Asset: asset, Target: target, Condition: cond}
}

func TestAddValidates(t *testing.T) {
	r := NewRegistry()

	err := r.Add(1, rule("btc", -5, types.ConditionAbove))
	require.Error(t, err)
	var validation *types.ValidationError
	require.ErrorAs(t, err, &validation)

	require.Error(t, r.Add(1, rule("btc", 0, types.ConditionAbove)))
	require.Error(t, r.Add(1, rule("", 100, types.ConditionAbove)))
	require.Error(t, r.Add(1, rule("btc", 100, "sideways")))
	require.Empty(t, r.List(1), "registry must be unchanged after rejected input")
}

func TestAddNormalizesAndKeepsOrder(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Add(1, rule("BTC", 50000, types.ConditionAbove)))
	require.NoError(t, r.Add(1, rule("eth", 2000, types.ConditionBelow)))

	rules := r.List(1)
	require.Len(t, rules, 2)
	require.Equal(t, "btc", rules[0].Asset)
	require.Equal(t, "eth", rules[1].Asset)
}

func TestDuplicateRulesAreDistinctEntries(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Add(1, rule("btc", 50000, types.ConditionAbove)))
	require.NoError(t, r.Add(1, rule("btc", 50000, types.ConditionAbove)))

	require.Len(t, r.List(1), 2)
	require.True(t, r.Remove(1, rule("btc", 50000, types.ConditionAbove)))
	require.Len(t, r.List(1), 1)
}

func TestRemove(t *testing.T) {
	r := NewRegistry()

	target := rule("btc", 50000, types.ConditionAbove)
	require.NoError(t, r.Add(1, rule("eth", 2000, types.ConditionBelow)))
	require.NoError(t, r.Add(1, target))

	require.True(t, r.Remove(1, target))
	require.False(t, r.Remove(1, target), "second removal of the same rule must report absence")

	rules := r.List(1)
	require.Len(t, rules, 1)
	require.Equal(t, "eth", rules[0].Asset)
}

func TestSnapshotIsDetached(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Add(1, rule("btc", 50000, types.ConditionAbove)))
	snapshot := r.Snapshot()

	require.NoError(t, r.Add(1, rule("eth", 2000, types.ConditionBelow)))
	require.True(t, r.Remove(1, rule("btc", 50000, types.ConditionAbove)))

	require.Len(t, snapshot[1], 1, "snapshot must not see later mutation")
	require.Equal(t, "btc", snapshot[1][0].Asset)
}
