package portfolio

import (
	"sync"

	"github.com/shopspring/decimal"

	"cryptofolio-telegram-bot/internal/price"
	"cryptofolio-telegram-bot/internal/types"
)

// Store keeps every chat's holdings in memory. Nothing survives a
// restart, that is a deliberate boundary of the bot.
type Store struct {
	mu       sync.RWMutex
	holdings map[int64]map[string]decimal.Decimal
	order    map[int64][]string
}

func NewStore() *Store {
	return &Store{
		holdings: make(map[int64]map[string]decimal.Decimal),
		order:    make(map[int64][]string),
	}
}

// Add accumulates quantity onto the chat's position in asset. Repeated
// adds for the same symbol sum up, the symbol is lower-cased first.
func (s *Store) Add(chatID int64, asset string, quantity decimal.Decimal) error {
	symbol := price.Normalize(asset)
	if symbol == "" {
		return types.Invalidf("asset symbol must not be empty")
	}
	if !quantity.IsPositive() {
		return types.Invalidf("quantity must be positive, got %s", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	positions, ok := s.holdings[chatID]
	if !ok {
		positions = make(map[string]decimal.Decimal)
		s.holdings[chatID] = positions
	}
	if _, held := positions[symbol]; !held {
		s.order[chatID] = append(s.order[chatID], symbol)
	}
	positions[symbol] = positions[symbol].Add(quantity)
	return nil
}

// View returns the chat's holdings in the order they were first added.
// A chat with no holdings gets an empty slice, not an error.
func (s *Store) View(chatID int64) []types.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Holding, 0, len(s.order[chatID]))
	for _, symbol := range s.order[chatID] {
		out = append(out, types.Holding{
			Asset:    symbol,
			Quantity: s.holdings[chatID][symbol],
		})
	}
	return out
}
