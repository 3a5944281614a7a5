package handlers

import (
	"context"
	"errors"
	"net/http"

	"poscore/internal/application/freshness"
	"poscore/internal/application/tabs"
	"poscore/internal/domain/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TabHandler exposes the registry and freshness machinery to the renderer
// shell over a local HTTP surface.
type TabHandler struct {
	registry  *tabs.Registry
	workspace *freshness.Workspace
	logger    *zap.Logger
}

func NewTabHandler(registry *tabs.Registry, workspace *freshness.Workspace, logger *zap.Logger) *TabHandler {
	return &TabHandler{registry: registry, workspace: workspace, logger: logger}
}

type openTabRequest struct {
	OrderID     string            `json:"order_id"`
	RelatedData model.RelatedData `json:"related_data"`
}

func (h *TabHandler) List(c *gin.Context) {
	active, err := h.registry.Active()
	activeID := ""
	if err == nil {
		activeID = active.ID
	}
	c.JSON(http.StatusOK, gin.H{
		"tabs":      h.registry.Tabs(),
		"active_id": activeID,
	})
}

// Open creates or activates a tab: with an order id it is an idempotent
// order open, without one a new draft.
func (h *TabHandler) Open(c *gin.Context) {
	var req openTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var tab *model.Tab
	if req.OrderID == "" {
		tab = h.registry.CreateDraft()
	} else {
		tab = h.registry.OpenOrder(req.OrderID, req.RelatedData)
	}
	c.JSON(http.StatusOK, tab)
}

func (h *TabHandler) Activate(c *gin.Context) {
	tabID := c.Param("tab_id")
	if err := h.registry.Activate(tabID); err != nil {
		if errors.Is(err, model.ErrTabNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
			return
		}
		h.logger.Error("Failed to activate tab", zap.Error(err), zap.String("tab_id", tabID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to activate tab"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TabHandler) Close(c *gin.Context) {
	tabID := c.Param("tab_id")
	if err := h.registry.Close(tabID); err != nil {
		if errors.Is(err, model.ErrTabNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
			return
		}
		h.logger.Error("Failed to close tab", zap.Error(err), zap.String("tab_id", tabID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close tab"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Refresh is the explicit refresh click for one panel category. The panel
// fetches run on their own goroutines and outlive this request, so they must
// not inherit the request context: it is canceled as soon as the 204 is
// written.
func (h *TabHandler) Refresh(c *gin.Context) {
	cat := model.Category(c.Param("category"))
	if len(model.PanelsOf(cat)) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	h.workspace.Refresh(context.Background(), cat)
	c.Status(http.StatusNoContent)
}

// PanelState returns the renderer-facing stream snapshot for one panel.
func (h *TabHandler) PanelState(c *gin.Context) {
	id := model.PanelID(c.Param("panel_id"))
	p := h.workspace.Panel(id)
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown panel"})
		return
	}
	st := p.State()
	c.JSON(http.StatusOK, gin.H{
		"rows":          st.Rows,
		"page":          st.Page,
		"has_more":      st.HasMore,
		"is_loading":    st.Loading,
		"error":         st.Err,
		"search_term":   st.SearchTerm,
		"ever_searched": st.EverSearched,
	})
}
