package repository

import (
	"context"
	"encoding/json"

	"poscore/internal/domain/model"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// ContextCache memoizes per-order panel payloads. Entries live for the
// process (or until invalidated); a key is (orderID, panel, variant), e.g. a
// print artifact keyed by (orderID, reportKey, formatURL).
type ContextCache interface {
	Get(orderID string, panel model.PanelID, variant string) (json.RawMessage, bool)
	Put(orderID string, panel model.PanelID, variant string, value json.RawMessage)
	// Invalidate drops entries for an order. With no panels given, every
	// panel's entries for the order are dropped.
	Invalidate(orderID string, panels ...model.PanelID)
}

// TabStore persists the tab registry snapshot under a fixed key. Clear is
// called on logout.
type TabStore interface {
	Save(ctx context.Context, tabs []model.Tab, activeID string) error
	Load(ctx context.Context) ([]model.Tab, string, error)
	Clear(ctx context.Context) error
}

// Request and Response are the opaque shapes exchanged with the
// order-management backend. Payloads pass through untouched.
type Request struct {
	URL    string
	Method string
	Params map[string]string
	Data   any
}

type Response struct {
	Success bool
	Status  int
	Data    json.RawMessage
}

// Transport is the injected request function. Implementations may be HTTP,
// IPC or a test double.
type Transport interface {
	Do(ctx context.Context, req Request) (Response, error)
}
