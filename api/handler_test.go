package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sales_manager/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestRouter(t *testing.T) (*gin.Engine, *sales.LocalStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	storage := sales.NewLocalStorage()
	require.NoError(t, storage.Set(sales.DefaultSlot, `[{"id":"1","nome":"Produto A","valor":100},{"id":"2","nome":"Produto B","valor":200}]`))

	logger := zaptest.NewLogger(t)
	InitRoutes(router, sales.NewService(storage, logger), logger)
	return router, storage
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []sales.Sale {
	t.Helper()
	var list []sales.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

// TestSalesHappyPath_FullFlow exercises POST -> PUT -> DELETE -> GET.
func TestSalesHappyPath_FullFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("POST_CreateSale", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/sales", `{"nome":"Novo Item","valor":"50.5"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		list := decodeList(t, w)
		require.Len(t, list, 3)
		assert.Equal(t, sales.Sale{ID: "3", Name: "Novo Item", Value: 50.5}, list[2])
	})

	t.Run("PUT_UpdateSale", func(t *testing.T) {
		w := doRequest(router, http.MethodPut, "/sales/2", `{"nome":"Produto B Editado","valor":250}`)
		assert.Equal(t, http.StatusOK, w.Code)

		list := decodeList(t, w)
		require.Len(t, list, 3)
		assert.Equal(t, sales.Sale{ID: "2", Name: "Produto B Editado", Value: 250}, list[1])
	})

	t.Run("DELETE_Sale", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/sales/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		first := decodeList(t, w)
		assert.Len(t, first, 2)

		w = doRequest(router, http.MethodDelete, "/sales/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, first, decodeList(t, w))
	})

	t.Run("GET_ListSales", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/sales", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-Total-Count"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		var response struct {
			Results  []sales.Sale  `json:"results"`
			Metadata sales.Summary `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []sales.Sale{
			{ID: "2", Name: "Produto B Editado", Value: 250},
			{ID: "3", Name: "Novo Item", Value: 50.5},
		}, response.Results)
		assert.Equal(t, sales.Summary{Quantity: 2, TotalAmount: 300.5}, response.Metadata)
	})

	t.Run("GET_Sale", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/sales/3", "")
		assert.Equal(t, http.StatusOK, w.Code)
		var sale sales.Sale
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
		assert.Equal(t, "Novo Item", sale.Name)
	})
}

func TestCreateSale_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"empty name", `{"nome":"","valor":"10"}`, http.StatusBadRequest},
		{"empty value", `{"nome":"Widget","valor":""}`, http.StatusBadRequest},
		{"missing value", `{"nome":"Widget"}`, http.StatusBadRequest},
		{"not a number", `{"nome":"Widget","valor":"dez"}`, http.StatusBadRequest},
		{"bad value type", `{"nome":"Widget","valor":true}`, http.StatusBadRequest},
		{"malformed body", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, storage := newTestRouter(t)
			before, _, _ := storage.Get(sales.DefaultSlot)

			w := doRequest(router, http.MethodPost, "/sales", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)

			after, _, _ := storage.Get(sales.DefaultSlot)
			assert.Equal(t, before, after)
		})
	}
}

func TestUpdateSale_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPut, "/sales/42", `{"nome":"X","valor":"1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/sales/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetAndPing(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/sales/reset", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sales.SeedSales(), decodeList(t, w))

	w = doRequest(router, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	doRequest(router, http.MethodGet, "/sales", "")

	w := doRequest(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `sales_operations_total{op="load",outcome="ok"}`))
}

func TestRequestID(t *testing.T) {
	router, _ := newTestRouter(t)

	send := func(header string) string {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if header != "" {
			req.Header.Set("X-Request-ID", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Header().Get("X-Request-ID")
	}

	const known = "0b9a0f8e-3c1d-4c1e-9f5a-2d7e6b4a1c3f"
	assert.Equal(t, known, send(known))

	for _, header := range []string{"", "not-a-uuid", strings.Repeat("a", 4096), "abc\r\nX-Injected: 1"} {
		got := send(header)
		assert.NotEqual(t, header, got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "generated id %q", got)
	}
}
