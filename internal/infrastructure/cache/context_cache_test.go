package cache

import (
	"encoding/json"
	"testing"

	"poscore/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContextCache_PutAndGet(t *testing.T) {
	t.Parallel()
	c := NewContextCache(zap.NewNop())

	c.Put("SO-1", model.PanelPrintDocuments, "invoice-a4", json.RawMessage(`{"pdf":"x"}`))

	got, ok := c.Get("SO-1", model.PanelPrintDocuments, "invoice-a4")
	require.True(t, ok)
	assert.JSONEq(t, `{"pdf":"x"}`, string(got))

	_, ok = c.Get("SO-1", model.PanelPrintDocuments, "invoice-letter")
	assert.False(t, ok, "a different variant is a different entry")

	_, ok = c.Get("SO-2", model.PanelPrintDocuments, "invoice-a4")
	assert.False(t, ok)
}

func TestContextCache_Overwrite(t *testing.T) {
	t.Parallel()
	c := NewContextCache(zap.NewNop())

	c.Put("SO-1", model.PanelCustomerRecent, "|p1", json.RawMessage(`[1]`))
	c.Put("SO-1", model.PanelCustomerRecent, "|p1", json.RawMessage(`[2]`))

	got, ok := c.Get("SO-1", model.PanelCustomerRecent, "|p1")
	require.True(t, ok)
	assert.JSONEq(t, `[2]`, string(got))
	assert.Equal(t, 1, c.Len())
}

func TestContextCache_Invalidate_WholeOrder(t *testing.T) {
	t.Parallel()
	c := NewContextCache(zap.NewNop())

	c.Put("SO-1", model.PanelPrintDocuments, "a", json.RawMessage(`1`))
	c.Put("SO-1", model.PanelCustomerRecent, "b", json.RawMessage(`2`))
	c.Put("SO-2", model.PanelPrintDocuments, "a", json.RawMessage(`3`))

	c.Invalidate("SO-1")

	_, ok := c.Get("SO-1", model.PanelPrintDocuments, "a")
	assert.False(t, ok)
	_, ok = c.Get("SO-1", model.PanelCustomerRecent, "b")
	assert.False(t, ok)
	_, ok = c.Get("SO-2", model.PanelPrintDocuments, "a")
	assert.True(t, ok, "other orders' entries survive")
}

func TestContextCache_Invalidate_ScopedToPanel(t *testing.T) {
	t.Parallel()
	c := NewContextCache(zap.NewNop())

	c.Put("SO-1", model.PanelPrintDocuments, "a", json.RawMessage(`1`))
	c.Put("SO-1", model.PanelCustomerRecent, "b", json.RawMessage(`2`))

	c.Invalidate("SO-1", model.PanelPrintDocuments)

	_, ok := c.Get("SO-1", model.PanelPrintDocuments, "a")
	assert.False(t, ok)
	_, ok = c.Get("SO-1", model.PanelCustomerRecent, "b")
	assert.True(t, ok)
}
