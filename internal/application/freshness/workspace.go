package freshness

import (
	"context"

	"poscore/internal/application/bypass"
	"poscore/internal/application/tabs"
	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"

	"go.uber.org/zap"
)

// Workspace owns every panel and reacts to registry mutations: tab switches
// rebind panels, customer changes rebind the customer panels, and committed
// status transitions or order-id links force one bypass round of the
// customer-insight panels.
type Workspace struct {
	registry *tabs.Registry
	cache    repository.ContextCache
	bypass   *bypass.Coordinator
	panels   map[model.PanelID]*Panel
	logger   *zap.Logger
}

func NewWorkspace(registry *tabs.Registry, cache repository.ContextCache, coord *bypass.Coordinator, logger *zap.Logger) *Workspace {
	w := &Workspace{
		registry: registry,
		cache:    cache,
		bypass:   coord,
		panels:   make(map[model.PanelID]*Panel),
		logger:   logger,
	}
	registry.Subscribe(w.onEvent)
	return w
}

// Add registers a panel with the workspace.
func (w *Workspace) Add(p *Panel) {
	w.panels[p.ID()] = p
}

// Panel returns the registered panel, or nil.
func (w *Workspace) Panel(id model.PanelID) *Panel {
	return w.panels[id]
}

// ActivatePanel mounts a panel as it becomes the visible sub-view.
func (w *Workspace) ActivatePanel(ctx context.Context, id model.PanelID) {
	if p, ok := w.panels[id]; ok {
		p.Mount(ctx)
	}
}

// Refresh is the explicit refresh click: every panel in the category must
// complete one fresh fetch before the category's pending set empties.
// Panels that are not mounted stay pending until they mount.
func (w *Workspace) Refresh(ctx context.Context, cat model.Category) {
	w.bypass.TriggerRefresh(cat)
	for _, id := range model.PanelsOf(cat) {
		if p, ok := w.panels[id]; ok && p.Mounted() {
			p.Refresh(ctx)
		}
	}
}

func (w *Workspace) onEvent(ev tabs.Event) {
	ctx := context.Background()

	switch ev.Kind {
	case tabs.EventActivated:
		for _, p := range w.panels {
			p.Bind(ctx, ev.Tab)
		}

	case tabs.EventCustomer:
		// Customer change refetches the customer panels immediately,
		// skipping the debounce.
		for _, p := range w.panels {
			if model.CategoryOf(p.ID()) == model.CategoryCustomer {
				p.Bind(ctx, ev.Tab)
			} else {
				p.Update(ev.Tab)
			}
		}

	case tabs.EventItems:
		for _, p := range w.panels {
			p.Update(ev.Tab)
		}

	case tabs.EventStatus:
		for _, p := range w.panels {
			p.Update(ev.Tab)
		}
		if ev.ServerConfirmed && committedTransition(ev.PrevStatus, ev.Tab.Status) {
			w.forceInsightBypass(ctx, ev.Tab)
		}

	case tabs.EventLinked:
		// First save of a draft changes the order identity; aggregates and
		// print artifacts fetched before it are no longer valid.
		for _, p := range w.panels {
			p.Update(ev.Tab)
		}
		w.forceInsightBypass(ctx, ev.Tab)
	}
}

// forceInsightBypass invalidates the order's print artifacts and forces one
// fresh round of the customer-insight panels. Mounted insight panels
// re-resolve now; unmounted ones on their next mount.
func (w *Workspace) forceInsightBypass(ctx context.Context, tab model.Tab) {
	if tab.OrderID != "" {
		w.cache.Invalidate(tab.OrderID, model.PanelsOf(model.CategoryPrints)...)
	}
	w.bypass.TriggerPanels(model.CategoryCustomer, model.CustomerInsightPanels()...)
	w.logger.Debug("Forcing customer-insight bypass",
		zap.String("tab_id", tab.ID), zap.String("order_id", tab.OrderID))

	for _, id := range model.CustomerInsightPanels() {
		if p, ok := w.panels[id]; ok && p.Mounted() {
			p.ctrl.Mount(ctx)
		}
	}
}

func committedTransition(from, to model.TabStatus) bool {
	return (from == model.StatusDraft && to == model.StatusConfirmed) ||
		(from == model.StatusConfirmed && to == model.StatusPaid)
}
