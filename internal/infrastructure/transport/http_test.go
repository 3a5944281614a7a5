package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupBackend(t *testing.T) (*httptest.Server, *HTTPTransport) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/customer/recent_orders", func(c *gin.Context) {
		if c.Query("search_term") == "boom" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
			return
		}
		c.JSON(http.StatusOK, []gin.H{
			{"name": "SO-1", "customer": c.Query("customer")},
		})
	})
	r.POST("/api/orders", func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, gin.H{"order_id": "SO-NEW", "echo": body})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv, NewHTTPTransport(srv.URL, srv.Client(), zap.NewNop())
}

func TestHTTPTransport_Get_PassesParams(t *testing.T) {
	t.Parallel()
	_, tr := setupBackend(t)

	resp, err := tr.Do(context.Background(), repository.Request{
		URL:    "api/customer/recent_orders",
		Method: http.MethodGet,
		Params: map[string]string{
			"customer":          "cust-9",
			"search_term":       "",
			"limit_start":       "1",
			"limit_page_length": "10",
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusOK, resp.Status)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "cust-9", rows[0]["customer"])
}

func TestHTTPTransport_Post_EncodesBody(t *testing.T) {
	t.Parallel()
	_, tr := setupBackend(t)

	resp, err := tr.Do(context.Background(), repository.Request{
		URL:    "/api/orders",
		Method: http.MethodPost,
		Data:   map[string]string{"customer": "cust-1"},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)

	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, "SO-NEW", out["order_id"])
}

func TestHTTPTransport_ServerError_NotSuccess(t *testing.T) {
	t.Parallel()
	_, tr := setupBackend(t)

	resp, err := tr.Do(context.Background(), repository.Request{
		URL:    "api/customer/recent_orders",
		Params: map[string]string{"search_term": "boom"},
	})

	require.NoError(t, err, "a served error page is not a transport failure")
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestHTTPTransport_ConnectionRefused_IsNetworkFailure(t *testing.T) {
	t.Parallel()

	tr := NewHTTPTransport("http://127.0.0.1:1", nil, zap.NewNop())
	_, err := tr.Do(context.Background(), repository.Request{URL: "api/orders"})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNetworkFailure)
}
