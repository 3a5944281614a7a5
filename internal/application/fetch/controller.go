package fetch

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Trigger names the UI event that caused a resolution.
type Trigger string

const (
	TriggerRebind  Trigger = "rebind"
	TriggerMount   Trigger = "mount"
	TriggerSearch  Trigger = "search"
	TriggerPage    Trigger = "page"
	TriggerRefresh Trigger = "refresh"
)

// Query carries the list request plus the stream state the policy layer
// needs to pick a data source.
type Query struct {
	SearchTerm   string
	Page         int
	PageLength   int
	EverSearched bool
}

// ResolveFunc produces one page of rows for a query. Implementations may
// answer from pre-fetched or cached data; a transport failure is returned as
// an error and leaves the previous rows displayed.
type ResolveFunc func(ctx context.Context, q Query, trigger Trigger) ([]json.RawMessage, error)

// State is the renderer-facing view of one list stream.
type State struct {
	Rows         []json.RawMessage
	Page         int
	HasMore      bool
	Loading      bool
	Err          string
	SearchTerm   string
	EverSearched bool
}

type Config struct {
	PageLength int
	Debounce   time.Duration
}

// Controller drives one list panel: search debounce, 1-indexed page cursor,
// structural has-more probing and stale-response discard. Pages are replaced,
// not accumulated.
type Controller struct {
	mu sync.Mutex

	cfg     Config
	resolve ResolveFunc
	logger  *zap.Logger

	rows         []json.RawMessage
	page         int
	hasMore      bool
	loading      bool
	errMsg       string
	searchTerm   string
	everSearched bool

	seq         uint64
	pendingTerm string
	timer       *time.Timer

	onUpdate func()
}

func NewController(cfg Config, resolve ResolveFunc, logger *zap.Logger) *Controller {
	if cfg.PageLength <= 0 {
		cfg.PageLength = 10
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 300 * time.Millisecond
	}
	return &Controller{
		cfg:     cfg,
		resolve: resolve,
		logger:  logger,
		page:    1,
	}
}

// OnUpdate registers a callback invoked after every applied state change.
func (c *Controller) OnUpdate(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// State returns a snapshot of the stream.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]json.RawMessage, len(c.rows))
	copy(rows, c.rows)
	return State{
		Rows:         rows,
		Page:         c.page,
		HasMore:      c.hasMore,
		Loading:      c.loading,
		Err:          c.errMsg,
		SearchTerm:   c.searchTerm,
		EverSearched: c.everSearched,
	}
}

// Rebind resets the stream for a new tab or customer and fetches
// immediately, skipping the debounce.
func (c *Controller) Rebind(ctx context.Context) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.searchTerm = ""
	c.pendingTerm = ""
	c.everSearched = false
	c.page = 1
	c.rows = nil
	c.hasMore = false
	c.errMsg = ""
	c.mu.Unlock()

	c.dispatch(ctx, TriggerRebind)
}

// SetSearchTerm records a search interaction. The fetch fires after the
// debounce window; rapid edits collapse into one request. Any interaction,
// including clearing the box, permanently poisons pre-fetched data for this
// stream.
func (c *Controller) SetSearchTerm(ctx context.Context, term string) {
	c.mu.Lock()
	c.everSearched = true
	c.pendingTerm = term
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.cfg.Debounce, func() {
		c.mu.Lock()
		c.searchTerm = c.pendingTerm
		c.page = 1
		c.timer = nil
		c.mu.Unlock()
		c.dispatch(ctx, TriggerSearch)
	})
	c.mu.Unlock()
}

// NextPage advances the cursor when more rows may exist.
func (c *Controller) NextPage(ctx context.Context) {
	c.mu.Lock()
	if !c.hasMore || c.loading {
		c.mu.Unlock()
		return
	}
	c.page++
	c.mu.Unlock()
	c.dispatch(ctx, TriggerPage)
}

// PrevPage moves the cursor back one page.
func (c *Controller) PrevPage(ctx context.Context) {
	c.mu.Lock()
	if c.page <= 1 || c.loading {
		c.mu.Unlock()
		return
	}
	c.page--
	c.mu.Unlock()
	c.dispatch(ctx, TriggerPage)
}

// Mount resolves the stream for a panel becoming visible, keeping search and
// page state. Runs immediately, no debounce.
func (c *Controller) Mount(ctx context.Context) {
	c.dispatch(ctx, TriggerMount)
}

// Refresh re-resolves the current view immediately.
func (c *Controller) Refresh(ctx context.Context) {
	c.dispatch(ctx, TriggerRefresh)
}

// dispatch issues a fetch tagged with the next sequence number. Only the
// response matching the latest issued sequence is applied; superseded
// responses are dropped on arrival.
func (c *Controller) dispatch(ctx context.Context, trigger Trigger) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	q := Query{
		SearchTerm:   c.searchTerm,
		Page:         c.page,
		PageLength:   c.cfg.PageLength,
		EverSearched: c.everSearched,
	}
	c.mu.Unlock()

	go func() {
		rows, err := c.resolve(ctx, q, trigger)
		c.apply(seq, q, rows, err)
	}()
}

func (c *Controller) apply(seq uint64, q Query, rows []json.RawMessage, err error) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale response",
			zap.Uint64("seq", seq), zap.String("search_term", q.SearchTerm))
		return
	}

	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		fn := c.onUpdate
		c.mu.Unlock()
		c.logger.Warn("Fetch failed, keeping previous rows",
			zap.Error(err), zap.Int("page", q.Page))
		if fn != nil {
			fn()
		}
		return
	}

	c.errMsg = ""
	switch {
	case len(rows) == 0 && q.Page > 1:
		// Empty page past the first one: roll the cursor back instead of
		// showing an empty page.
		c.page = q.Page - 1
		c.hasMore = false
	default:
		c.rows = rows
		c.hasMore = len(rows) == q.PageLength
	}
	fn := c.onUpdate
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}
