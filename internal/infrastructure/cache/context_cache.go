package cache

import (
	"encoding/json"
	"sync"

	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"

	"go.uber.org/zap"
)

// ContextCache memoizes panel payloads per order for the life of the
// process. Print artifacts are expensive to regenerate and immutable for a
// given (order, format) pair until the order's print-eligible event changes,
// so entries are keyed by content identity, not time.
type ContextCache struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
	logger  *zap.Logger
}

func NewContextCache(logger *zap.Logger) *ContextCache {
	return &ContextCache{
		entries: make(map[string]json.RawMessage),
		logger:  logger,
	}
}

var _ repository.ContextCache = (*ContextCache)(nil)

// key composition is orderID|panel|variant, byte for byte, everywhere.
func key(orderID string, panel model.PanelID, variant string) string {
	return orderID + "|" + string(panel) + "|" + variant
}

func prefix(orderID string, panel model.PanelID) string {
	return orderID + "|" + string(panel) + "|"
}

func (c *ContextCache) Get(orderID string, panel model.PanelID, variant string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key(orderID, panel, variant)]
	return v, ok
}

func (c *ContextCache) Put(orderID string, panel model.PanelID, variant string, value json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(orderID, panel, variant)] = value
}

// Invalidate drops every entry for the order, or only the named panels'
// entries when given.
func (c *ContextCache) Invalidate(orderID string, panels ...model.PanelID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	if len(panels) == 0 {
		p := orderID + "|"
		for k := range c.entries {
			if len(k) >= len(p) && k[:len(p)] == p {
				delete(c.entries, k)
				dropped++
			}
		}
	} else {
		for _, panel := range panels {
			p := prefix(orderID, panel)
			for k := range c.entries {
				if len(k) >= len(p) && k[:len(p)] == p {
					delete(c.entries, k)
					dropped++
				}
			}
		}
	}
	if dropped > 0 {
		c.logger.Debug("Cache entries invalidated",
			zap.String("order_id", orderID), zap.Int("dropped", dropped))
	}
}

// Len reports the number of live entries.
func (c *ContextCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
