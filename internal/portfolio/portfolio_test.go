package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAddNormalizesSymbols(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add(1, "BTC", decimal.NewFromInt(1)))
	require.NoError(t, s.Add(1, "btc", decimal.NewFromInt(2)))

	holdings := s.View(1)
	require.Len(t, holdings, 1)
	require.Equal(t, "btc", holdings[0].Asset)
	require.True(t, holdings[0].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestAddAccumulates(t *testing.T) {
	s := NewStore()

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Add(1, "eth", decimal.RequireFromString("0.1")))
	}

	holdings := s.View(1)
	require.Len(t, holdings, 1)
	require.True(t, holdings[0].Quantity.Equal(decimal.NewFromInt(1)), "got %s", holdings[0].Quantity)
}

func TestAddRejectsBadInput(t *testing.T) {
	s := NewStore()

	require.Error(t, s.Add(1, "btc", decimal.Zero))
	require.Error(t, s.Add(1, "btc", decimal.NewFromInt(-5)))
	require.Error(t, s.Add(1, "  ", decimal.NewFromInt(1)))
	require.Empty(t, s.View(1))
}

func TestViewKeepsInsertionOrder(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add(1, "btc", decimal.NewFromInt(1)))
	require.NoError(t, s.Add(1, "eth", decimal.NewFromInt(2)))
	require.NoError(t, s.Add(1, "doge", decimal.NewFromInt(3)))
	require.NoError(t, s.Add(1, "BTC", decimal.NewFromInt(1)))

	holdings := s.View(1)
	require.Len(t, holdings, 3)
	require.Equal(t, "btc", holdings[0].Asset)
	require.Equal(t, "eth", holdings[1].Asset)
	require.Equal(t, "doge", holdings[2].Asset)
}

func TestViewEmptyForUnknownChat(t *testing.T) {
	s := NewStore()
	require.Empty(t, s.View(42))
}

func TestChatsAreIsolated(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add(1, "btc", decimal.NewFromInt(1)))
	require.NoError(t, s.Add(2, "btc", decimal.NewFromInt(7)))

	require.True(t, s.View(1)[0].Quantity.Equal(decimal.NewFromInt(1)))
	require.True(t, s.View(2)[0].Quantity.Equal(decimal.NewFromInt(7)))
}
