package bypass

import (
	"sync"

	"poscore/internal/domain/model"

	"go.uber.org/zap"
)

// state is one category's refresh machine: Idle when remaining is empty,
// Pending otherwise. token only moves forward.
type state struct {
	token     uint64
	remaining map[model.PanelID]struct{}
}

func (s *state) pending() bool {
	return len(s.remaining) > 0
}

// Coordinator forces one round of fresh fetches per category after an
// explicit refresh or a status-changing action. Each panel must complete a
// fresh fetch before the category returns to idle; a panel that never mounts
// keeps the category pending.
type Coordinator struct {
	mu     sync.Mutex
	states map[model.Category]*state
	logger *zap.Logger
}

func NewCoordinator(logger *zap.Logger) *Coordinator {
	return &Coordinator{
		states: make(map[model.Category]*state),
		logger: logger,
	}
}

func (c *Coordinator) get(cat model.Category) *state {
	s, ok := c.states[cat]
	if !ok {
		s = &state{remaining: make(map[model.PanelID]struct{})}
		c.states[cat] = s
	}
	return s
}

// TriggerRefresh advances the category token and marks every panel in the
// category as requiring a fresh fetch.
func (c *Coordinator) TriggerRefresh(cat model.Category) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.get(cat)
	s.token++
	s.remaining = make(map[model.PanelID]struct{})
	for _, p := range model.PanelsOf(cat) {
		s.remaining[p] = struct{}{}
	}
	c.logger.Debug("Refresh triggered",
		zap.String("category", string(cat)), zap.Uint64("token", s.token))
	return s.token
}

// TriggerPanels is TriggerRefresh scoped to a subset of the category's
// panels, used for transition-driven bypasses.
func (c *Coordinator) TriggerPanels(cat model.Category, panels ...model.PanelID) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.get(cat)
	s.token++
	s.remaining = make(map[model.PanelID]struct{})
	for _, p := range panels {
		s.remaining[p] = struct{}{}
	}
	return s.token
}

// IsPending reports whether the panel must ignore cache on its next
// resolution.
func (c *Coordinator) IsPending(panel model.PanelID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.states[model.CategoryOf(panel)]
	if !ok {
		return false
	}
	_, pending := s.remaining[panel]
	return pending
}

// Token returns the category's current token. A panel captures it before
// fetching and hands it back to Resolve.
func (c *Coordinator) Token(cat model.Category) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(cat).token
}

// Resolve clears the panel from the pending set once fresh data lands, but
// only if observedToken still matches: a refresh arriving mid-fetch must not
// be cleared by a fetch started under the old token.
func (c *Coordinator) Resolve(panel model.PanelID, observedToken uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat := model.CategoryOf(panel)
	s, ok := c.states[cat]
	if !ok {
		return
	}
	if s.token != observedToken {
		c.logger.Debug("Ignoring stale bypass resolution",
			zap.String("panel", string(panel)),
			zap.Uint64("observed", observedToken), zap.Uint64("current", s.token))
		return
	}
	delete(s.remaining, panel)
	if !s.pending() {
		c.logger.Debug("Refresh round complete", zap.String("category", string(cat)))
	}
}

// Pending returns the panels still owing a fresh fetch for the category.
func (c *Coordinator) Pending(cat model.Category) []model.PanelID {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.states[cat]
	if !ok {
		return nil
	}
	out := make([]model.PanelID, 0, len(s.remaining))
	for p := range s.remaining {
		out = append(out, p)
	}
	return out
}
