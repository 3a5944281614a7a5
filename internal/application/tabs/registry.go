package tabs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"poscore/internal/application/validation"
	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventKind string

const (
	EventOpened    EventKind = "opened"
	EventActivated EventKind = "activated"
	EventCustomer  EventKind = "customer"
	EventItems     EventKind = "items"
	EventStatus    EventKind = "status"
	EventLinked    EventKind = "linked"
	EventClosed    EventKind = "closed"
)

// Event describes a registry mutation. Tab is a snapshot taken at emit time.
type Event struct {
	Kind            EventKind
	Tab             model.Tab
	PrevStatus      model.TabStatus
	ServerConfirmed bool
}

// Registry holds every open tab. At most one tab is active; an order id, when
// set, is unique across tabs.
type Registry struct {
	mu       sync.Mutex
	tabs     []*model.Tab
	activeID string
	draftSeq int

	store     repository.TabStore
	validator *validation.Validator
	logger    *zap.Logger

	subsMu sync.RWMutex
	subs   []func(Event)
}

func NewRegistry(store repository.TabStore, logger *zap.Logger) *Registry {
	return &Registry{
		store:     store,
		validator: validation.NewValidator(),
		logger:    logger,
	}
}

// Subscribe registers a listener for registry mutations. Listeners are called
// synchronously after the mutation commits, outside the registry lock.
func (r *Registry) Subscribe(fn func(Event)) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	r.subs = append(r.subs, fn)
}

func (r *Registry) emit(events ...Event) {
	r.subsMu.RLock()
	subs := make([]func(Event), len(r.subs))
	copy(subs, r.subs)
	r.subsMu.RUnlock()

	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}

// OpenOrder opens a tab for a saved order. Opening an already-open order
// activates the existing tab instead of creating a duplicate.
func (r *Registry) OpenOrder(orderID string, bundle model.RelatedData) *model.Tab {
	r.mu.Lock()

	for _, t := range r.tabs {
		if t.OrderID == orderID {
			r.activeID = t.ID
			snap := *t
			r.mu.Unlock()
			r.logger.Debug("Order already open, activating tab",
				zap.String("order_id", orderID), zap.String("tab_id", snap.ID))
			r.emit(Event{Kind: EventActivated, Tab: snap})
			return &snap
		}
	}

	tab := &model.Tab{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		DisplayName: orderID,
		Status:      model.StatusDraft,
		Customer:    model.WalkingCustomer,
		RelatedData: bundle,
	}
	r.tabs = append(r.tabs, tab)
	r.activeID = tab.ID
	snap := *tab
	r.mu.Unlock()

	r.logger.Info("Order opened", zap.String("order_id", orderID), zap.String("tab_id", snap.ID))
	r.emit(Event{Kind: EventOpened, Tab: snap}, Event{Kind: EventActivated, Tab: snap})
	return &snap
}

// CreateDraft opens an unlinked tab with a generated display name.
func (r *Registry) CreateDraft() *model.Tab {
	r.mu.Lock()
	r.draftSeq++
	tab := &model.Tab{
		ID:          uuid.NewString(),
		DisplayName: fmt.Sprintf("New %d", r.draftSeq),
		Status:      model.StatusDraft,
		Customer:    model.WalkingCustomer,
	}
	r.tabs = append(r.tabs, tab)
	r.activeID = tab.ID
	snap := *tab
	r.mu.Unlock()

	r.logger.Info("Draft tab created", zap.String("tab_id", snap.ID), zap.String("name", snap.DisplayName))
	r.emit(Event{Kind: EventOpened, Tab: snap}, Event{Kind: EventActivated, Tab: snap})
	return &snap
}

func (r *Registry) find(tabID string) *model.Tab {
	for _, t := range r.tabs {
		if t.ID == tabID {
			return t
		}
	}
	return nil
}

// UpdateCustomer replaces the tab's customer and marks it dirty.
func (r *Registry) UpdateCustomer(tabID string, c model.Customer) error {
	r.mu.Lock()
	tab := r.find(tabID)
	if tab == nil {
		r.mu.Unlock()
		return model.ErrTabNotFound
	}
	tab.Customer = c
	tab.Dirty = true
	snap := *tab
	r.mu.Unlock()

	r.emit(Event{Kind: EventCustomer, Tab: snap})
	return nil
}

// UpdateItems applies mutate to the tab's line items and marks it dirty.
func (r *Registry) UpdateItems(tabID string, mutate func([]model.LineItem) []model.LineItem) error {
	r.mu.Lock()
	tab := r.find(tabID)
	if tab == nil {
		r.mu.Unlock()
		return model.ErrTabNotFound
	}
	tab.Items = mutate(tab.Items)
	tab.Dirty = true
	snap := *tab
	r.mu.Unlock()

	r.emit(Event{Kind: EventItems, Tab: snap})
	return nil
}

// SetStatus transitions the tab's lifecycle status. Transitions driven by a
// server confirmation do not dirty the tab.
func (r *Registry) SetStatus(tabID string, status model.TabStatus, serverConfirmed bool) error {
	r.mu.Lock()
	tab := r.find(tabID)
	if tab == nil {
		r.mu.Unlock()
		return model.ErrTabNotFound
	}
	prev := tab.Status
	tab.Status = status
	if !serverConfirmed {
		tab.Dirty = true
	}
	snap := *tab
	r.mu.Unlock()

	r.logger.Info("Tab status changed",
		zap.String("tab_id", tabID),
		zap.String("from", string(prev)), zap.String("to", string(status)),
		zap.Bool("server_confirmed", serverConfirmed))
	r.emit(Event{Kind: EventStatus, Tab: snap, PrevStatus: prev, ServerConfirmed: serverConfirmed})
	return nil
}

// LinkOrder attaches the backend order id assigned on the first save of a
// draft. The id must not already be open in another tab.
func (r *Registry) LinkOrder(tabID, orderID string) error {
	r.mu.Lock()
	for _, t := range r.tabs {
		if t.OrderID == orderID && t.ID != tabID {
			r.mu.Unlock()
			return fmt.Errorf("order %s already open in tab %s", orderID, t.ID)
		}
	}
	tab := r.find(tabID)
	if tab == nil {
		r.mu.Unlock()
		return model.ErrTabNotFound
	}
	tab.OrderID = orderID
	tab.DisplayName = orderID
	tab.Dirty = false
	snap := *tab
	r.mu.Unlock()

	r.logger.Info("Tab linked to order", zap.String("tab_id", tabID), zap.String("order_id", orderID))
	r.emit(Event{Kind: EventLinked, Tab: snap})
	return nil
}

// SetRelatedData replaces one panel's pre-fetched payload on the tab. Called
// when a first-page fetch lands; does not dirty the tab.
func (r *Registry) SetRelatedData(tabID string, panel model.PanelID, value json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tab := r.find(tabID)
	if tab == nil {
		return model.ErrTabNotFound
	}
	if tab.RelatedData == nil {
		tab.RelatedData = make(model.RelatedData)
	}
	tab.RelatedData[panel] = value
	return nil
}

// Close removes the tab. If it was active, the first remaining tab becomes
// active, or none when the registry empties.
func (r *Registry) Close(tabID string) error {
	r.mu.Lock()
	idx := -1
	for i, t := range r.tabs {
		if t.ID == tabID {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return model.ErrTabNotFound
	}
	closed := *r.tabs[idx]
	r.tabs = append(r.tabs[:idx], r.tabs[idx+1:]...)

	events := []Event{{Kind: EventClosed, Tab: closed}}
	if r.activeID == tabID {
		r.activeID = ""
		if len(r.tabs) > 0 {
			r.activeID = r.tabs[0].ID
			events = append(events, Event{Kind: EventActivated, Tab: *r.tabs[0]})
		}
	}
	r.mu.Unlock()

	r.emit(events...)
	return nil
}

// Activate makes the tab the active one.
func (r *Registry) Activate(tabID string) error {
	r.mu.Lock()
	tab := r.find(tabID)
	if tab == nil {
		r.mu.Unlock()
		return model.ErrTabNotFound
	}
	r.activeID = tab.ID
	snap := *tab
	r.mu.Unlock()

	r.emit(Event{Kind: EventActivated, Tab: snap})
	return nil
}

// Active returns a snapshot of the active tab.
func (r *Registry) Active() (*model.Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tab := r.find(r.activeID)
	if tab == nil {
		return nil, model.ErrNoActiveTab
	}
	snap := *tab
	return &snap, nil
}

// Get returns a snapshot of the tab.
func (r *Registry) Get(tabID string) (*model.Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tab := r.find(tabID)
	if tab == nil {
		return nil, model.ErrTabNotFound
	}
	snap := *tab
	return &snap, nil
}

// Tabs returns snapshots of every open tab in open order.
func (r *Registry) Tabs() []model.Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Tab, 0, len(r.tabs))
	for _, t := range r.tabs {
		out = append(out, *t)
	}
	return out
}

// Snapshot persists the registry through the tab store.
func (r *Registry) Snapshot(ctx context.Context) error {
	r.mu.Lock()
	tabsCopy := make([]model.Tab, 0, len(r.tabs))
	for _, t := range r.tabs {
		tabsCopy = append(tabsCopy, *t)
	}
	activeID := r.activeID
	r.mu.Unlock()

	if err := r.store.Save(ctx, tabsCopy, activeID); err != nil {
		r.logger.Error("Failed to persist tab snapshot", zap.Error(err))
		return fmt.Errorf("failed to persist tab snapshot: %w", err)
	}
	return nil
}

// Restore loads the persisted snapshot. Tabs that fail validation are dropped
// rather than failing the whole restore.
func (r *Registry) Restore(ctx context.Context) error {
	stored, activeID, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Error("Failed to load tab snapshot", zap.Error(err))
		return fmt.Errorf("failed to load tab snapshot: %w", err)
	}

	r.mu.Lock()
	r.tabs = r.tabs[:0]
	seen := make(map[string]bool)
	for i := range stored {
		t := stored[i]
		if err := r.validator.ValidateTab(t); err != nil {
			r.logger.Warn("Dropping invalid persisted tab", zap.String("tab_id", t.ID), zap.Error(err))
			continue
		}
		if t.OrderID != "" && seen[t.OrderID] {
			r.logger.Warn("Dropping duplicate persisted tab", zap.String("order_id", t.OrderID))
			continue
		}
		seen[t.OrderID] = t.OrderID != ""
		tab := t
		r.tabs = append(r.tabs, &tab)
		if t.DisplayName != "" {
			var n int
			if _, err := fmt.Sscanf(t.DisplayName, "New %d", &n); err == nil && n > r.draftSeq {
				r.draftSeq = n
			}
		}
	}
	r.activeID = ""
	if r.find(activeID) != nil {
		r.activeID = activeID
	} else if len(r.tabs) > 0 {
		r.activeID = r.tabs[0].ID
	}
	count := len(r.tabs)
	r.mu.Unlock()

	r.logger.Info("Tab registry restored", zap.Int("tabs", count))
	return nil
}

// Reset closes every tab and clears the persisted snapshot. Used on logout.
func (r *Registry) Reset(ctx context.Context) error {
	r.mu.Lock()
	r.tabs = r.tabs[:0]
	r.activeID = ""
	r.draftSeq = 0
	r.mu.Unlock()

	if err := r.store.Clear(ctx); err != nil {
		r.logger.Error("Failed to clear tab store", zap.Error(err))
		return fmt.Errorf("failed to clear tab store: %w", err)
	}
	return nil
}
