package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"poscore/internal/application/bypass"
	"poscore/internal/application/fetch"
	"poscore/internal/application/freshness"
	"poscore/internal/application/tabs"
	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"
	"poscore/internal/domain/repository/mocks"
	"poscore/internal/infrastructure/cache"
	"poscore/internal/infrastructure/http/handlers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

func setupTest(t *testing.T) (*tabs.Registry, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	logger := zap.NewNop()

	store := mocks.NewMockTabStore(ctrl)
	registry := tabs.NewRegistry(store, logger)
	contextCache := cache.NewContextCache(logger)
	coord := bypass.NewCoordinator(logger)
	workspace := freshness.NewWorkspace(registry, contextCache, coord, logger)

	h := handlers.NewTabHandler(registry, workspace, logger)

	r := gin.New()
	r.GET("/tabs", h.List)
	r.POST("/tabs", h.Open)
	r.POST("/tabs/:tab_id/activate", h.Activate)
	r.DELETE("/tabs/:tab_id", h.Close)
	r.POST("/refresh/:category", h.Refresh)
	r.GET("/panels/:panel_id", h.PanelState)

	return registry, r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, path, reader)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTabHandler_Open_Order(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/tabs", `{"order_id":"SO-1001"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var tab model.Tab
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tab))
	assert.Equal(t, "SO-1001", tab.OrderID)

	// Opening the same order again returns the existing tab.
	w2 := doRequest(t, r, http.MethodPost, "/tabs", `{"order_id":"SO-1001"}`)
	require.Equal(t, http.StatusOK, w2.Code)

	var tab2 model.Tab
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &tab2))
	assert.Equal(t, tab.ID, tab2.ID)
}

func TestTabHandler_Open_Draft(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/tabs", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var tab model.Tab
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tab))
	assert.Equal(t, "New 1", tab.DisplayName)
	assert.Empty(t, tab.OrderID)
}

func TestTabHandler_Open_BadBody(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/tabs", `{broken`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTabHandler_List(t *testing.T) {
	registry, r := setupTest(t)

	registry.OpenOrder("SO-1", nil)
	registry.OpenOrder("SO-2", nil)

	w := doRequest(t, r, http.MethodGet, "/tabs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Tabs     []model.Tab `json:"tabs"`
		ActiveID string      `json:"active_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out.Tabs, 2)
	assert.Equal(t, out.Tabs[1].ID, out.ActiveID)
}

func TestTabHandler_Activate_NotFound(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/tabs/ghost/activate", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTabHandler_Close(t *testing.T) {
	registry, r := setupTest(t)
	tab := registry.OpenOrder("SO-9", nil)

	w := doRequest(t, r, http.MethodDelete, "/tabs/"+tab.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, registry.Tabs())
}

func TestTabHandler_Refresh_UnknownCategory(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/refresh/bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTabHandler_Refresh_KnownCategory(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/refresh/customer", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

// The 204 is written before the panel fetches finish, so the fetches must run
// on a context that survives the request being canceled.
func TestTabHandler_Refresh_OutlivesRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	logger := zap.NewNop()

	registry := tabs.NewRegistry(mocks.NewMockTabStore(ctrl), logger)
	contextCache := cache.NewContextCache(logger)
	coord := bypass.NewCoordinator(logger)
	workspace := freshness.NewWorkspace(registry, contextCache, coord, logger)

	responded := make(chan struct{})
	fetchCtxErr := make(chan error, 1)
	trans := mocks.NewMockTransport(ctrl)
	trans.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ repository.Request) (repository.Response, error) {
			<-responded
			fetchCtxErr <- ctx.Err()
			return repository.Response{Success: true, Status: 200, Data: json.RawMessage(`[{"name":"A"}]`)}, nil
		})

	panel := freshness.NewPanel(
		freshness.Spec{ID: model.PanelCustomerRecent, Endpoint: "api/customer/recent_orders"},
		fetch.Config{PageLength: 5}, contextCache, coord, trans, registry, logger)
	updates := make(chan struct{}, 4)
	panel.Controller().OnUpdate(func() { updates <- struct{}{} })
	workspace.Add(panel)

	registry.OpenOrder("SO-77", model.RelatedData{model.PanelCustomerRecent: json.RawMessage(`[]`)})
	workspace.ActivatePanel(context.Background(), model.PanelCustomerRecent)
	<-updates // mount answered by the pre-fetched bundle, no network

	h := handlers.NewTabHandler(registry, workspace, logger)
	r := gin.New()
	r.POST("/refresh/:category", h.Refresh)

	reqCtx, cancelReq := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, "/refresh/customer", strings.NewReader(""))
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// A real server cancels the request context once the handler returns.
	cancelReq()
	close(responded)

	<-updates
	assert.NoError(t, <-fetchCtxErr)

	st := panel.State()
	assert.Empty(t, st.Err)
	require.Len(t, st.Rows, 1)
	assert.False(t, coord.IsPending(model.PanelCustomerRecent))
}

func TestTabHandler_PanelState_Unknown(t *testing.T) {
	_, r := setupTest(t)

	w := doRequest(t, r, http.MethodGet, "/panels/bogus", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
