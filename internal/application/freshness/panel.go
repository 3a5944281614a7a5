package freshness

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"poscore/internal/application/bypass"
	"poscore/internal/application/fetch"
	"poscore/internal/application/tabs"
	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"

	"go.uber.org/zap"
)

// Spec describes one panel: its identity, the backend endpoint serving it and
// the base variant of its cache key (e.g. a print format URL).
type Spec struct {
	ID       model.PanelID
	Endpoint string
	Variant  string
	// BindParams contributes tab-derived request parameters (customer id,
	// order id). Nil means no extra parameters.
	BindParams func(tab model.Tab) map[string]string
}

// Panel binds one contextual view to the freshness machinery: a fetch
// controller for debounce/paging/sequencing, the context cache, the bypass
// coordinator and the transport. The resolution policy decides, per request,
// whether the pre-fetched bundle, a cached value or a fresh fetch answers.
type Panel struct {
	spec     Spec
	cache    repository.ContextCache
	bypass   *bypass.Coordinator
	trans    repository.Transport
	registry *tabs.Registry
	logger   *zap.Logger

	ctrl *fetch.Controller

	mu      sync.Mutex
	tab     model.Tab
	mounted bool
}

func NewPanel(spec Spec, cfg fetch.Config, cache repository.ContextCache, coord *bypass.Coordinator, trans repository.Transport, registry *tabs.Registry, logger *zap.Logger) *Panel {
	p := &Panel{
		spec:     spec,
		cache:    cache,
		bypass:   coord,
		trans:    trans,
		registry: registry,
		logger:   logger,
	}
	p.ctrl = fetch.NewController(cfg, p.resolve, logger)
	return p
}

func (p *Panel) ID() model.PanelID { return p.spec.ID }

// Controller exposes the stream surface consumed by renderers.
func (p *Panel) Controller() *fetch.Controller { return p.ctrl }

// State returns the renderer-facing stream snapshot.
func (p *Panel) State() fetch.State { return p.ctrl.State() }

// Bind points the panel at a tab and, when mounted, re-resolves immediately.
func (p *Panel) Bind(ctx context.Context, tab model.Tab) {
	p.mu.Lock()
	p.tab = tab
	mounted := p.mounted
	p.mu.Unlock()

	if mounted {
		p.ctrl.Rebind(ctx)
	}
}

// Update refreshes the panel's tab snapshot without re-resolving.
func (p *Panel) Update(tab model.Tab) {
	p.mu.Lock()
	p.tab = tab
	p.mu.Unlock()
}

// Mount marks the panel visible and resolves it. A panel that never mounts
// never fetches, so a pending bypass for it never clears.
func (p *Panel) Mount(ctx context.Context) {
	p.mu.Lock()
	first := !p.mounted
	p.mounted = true
	p.mu.Unlock()

	if first {
		p.ctrl.Rebind(ctx)
		return
	}
	p.ctrl.Mount(ctx)
}

// Mounted reports whether the panel has ever become visible.
func (p *Panel) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted
}

// Refresh forces the panel to ignore cache on this resolution.
func (p *Panel) Refresh(ctx context.Context) {
	p.ctrl.Refresh(ctx)
}

func (p *Panel) currentTab() model.Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

func (p *Panel) variantFor(q fetch.Query) string {
	return fmt.Sprintf("%s|%s|p%d", p.spec.Variant, q.SearchTerm, q.Page)
}

// resolve is the freshness policy, run for every resolution of this panel.
//
// Order matters: an explicit refresh or pending bypass always fetches; any
// past search interaction with an empty term fetches (pre-fetched data is
// never trusted again after a search); the pre-fetched bundle answers only
// page 1 with no term; then the cache; then the network.
func (p *Panel) resolve(ctx context.Context, q fetch.Query, trigger fetch.Trigger) ([]json.RawMessage, error) {
	tab := p.currentTab()

	if trigger == fetch.TriggerRefresh || p.bypass.IsPending(p.spec.ID) {
		p.cache.Invalidate(tab.OrderID, p.spec.ID)
		return p.fetchFresh(ctx, tab, q)
	}

	if q.EverSearched && q.SearchTerm == "" {
		return p.fetchFresh(ctx, tab, q)
	}

	if q.SearchTerm == "" && q.Page == 1 {
		if raw, ok := tab.RelatedData[p.spec.ID]; ok {
			p.logger.Debug("Serving pre-fetched bundle",
				zap.String("panel", string(p.spec.ID)), zap.String("order_id", tab.OrderID))
			return decodeRows(raw), nil
		}
	}

	if raw, ok := p.cache.Get(tab.OrderID, p.spec.ID, p.variantFor(q)); ok {
		p.logger.Debug("Serving cached value",
			zap.String("panel", string(p.spec.ID)), zap.String("order_id", tab.OrderID))
		return decodeRows(raw), nil
	}

	return p.fetchFresh(ctx, tab, q)
}

// fetchFresh performs the network call and writes the result back into the
// cache. The bypass token is captured before the call so a refresh arriving
// mid-flight is not cleared by this fetch.
func (p *Panel) fetchFresh(ctx context.Context, tab model.Tab, q fetch.Query) ([]json.RawMessage, error) {
	token := p.bypass.Token(model.CategoryOf(p.spec.ID))

	params := map[string]string{
		"search_term":       q.SearchTerm,
		"limit_start":       fmt.Sprintf("%d", q.Page),
		"limit_page_length": fmt.Sprintf("%d", q.PageLength),
	}
	if p.spec.BindParams != nil {
		for k, v := range p.spec.BindParams(tab) {
			params[k] = v
		}
	}

	resp, err := p.trans.Do(ctx, repository.Request{
		URL:    p.spec.Endpoint,
		Method: "GET",
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNetworkFailure, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: backend returned status %d", model.ErrNetworkFailure, resp.Status)
	}

	rows := decodeRows(resp.Data)

	p.cache.Put(tab.OrderID, p.spec.ID, p.variantFor(q), resp.Data)
	if q.Page == 1 && q.SearchTerm == "" && tab.ID != "" {
		if err := p.registry.SetRelatedData(tab.ID, p.spec.ID, resp.Data); err != nil {
			p.logger.Debug("Tab gone before related data writeback",
				zap.String("tab_id", tab.ID), zap.Error(err))
		}
	}

	p.bypass.Resolve(p.spec.ID, token)
	return rows, nil
}

// decodeRows treats the opaque payload as a row list when it is a JSON
// array, otherwise as a single-row value (detail panels return one object).
func decodeRows(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err == nil {
		return rows
	}
	return []json.RawMessage{raw}
}
