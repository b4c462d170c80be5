package alert

import (
	"math"
	"sync"

	"cryptofolio-telegram-bot/internal/price"
	"cryptofolio-telegram-bot/internal/types"
)

// Registry holds every chat's active alert rules, in insertion order.
// The checker iterates over snapshots and removes fired rules through
// Remove, never by mutating the live slices.
type Registry struct {
	mu    sync.RWMutex
	rules map[int64][]types.Rule
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[int64][]types.Rule)}
}

// Add appends a rule to the chat's list. Duplicate rules are legal and
// tracked as distinct entries.
func (r *Registry) Add(chatID int64, rule types.Rule) error {
	rule.Asset = price.Normalize(rule.Asset)
	if rule.Asset == "" {
		return types.Invalidf("asset symbol must not be empty")
	}
	if rule.Target <= 0 || math.IsInf(rule.Target, 0) || math.IsNaN(rule.Target) {
		return types.Invalidf("target price must be a positive number, got %g", rule.Target)
	}
	if rule.Condition != types.ConditionAbove && rule.Condition != types.ConditionBelow {
		return types.Invalidf("unknown condition %q", rule.Condition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[chatID] = append(r.rules[chatID], rule)
	return nil
}

// List returns a copy of the chat's rules in insertion order.
func (r *Registry) List(chatID int64) []types.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Rule, len(r.rules[chatID]))
	copy(out, r.rules[chatID])
	return out
}

// Snapshot copies the whole registry so a checker tick can iterate
// while other actors keep adding and removing rules.
func (r *Registry) Snapshot() map[int64][]types.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[int64][]types.Rule, len(r.rules))
	for chatID, rules := range r.rules {
		cp := make([]types.Rule, len(rules))
		copy(cp, rules)
		snapshot[chatID] = cp
	}
	return snapshot
}

// Remove deletes the first rule structurally equal to rule from the
// chat's list and reports whether one was there. Removing a rule that
// is already gone is not an error, the checker relies on that when a
// user deletes a rule mid-tick.
func (r *Registry) Remove(chatID int64, rule types.Rule) bool {
	rule.Asset = price.Normalize(rule.Asset)

	r.mu.Lock()
	defer r.mu.Unlock()

	rules := r.rules[chatID]
	for i := range rules {
		if rules[i] == rule {
			r.rules[chatID] = append(rules[:i], rules[i+1:]...)
			if len(r.rules[chatID]) == 0 {
				delete(r.rules, chatID)
			}
			return true
		}
	}
	return false
}
