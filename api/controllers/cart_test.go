package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caribvital/seamoss-backend/api/middleware"
	cartsvc "github.com/caribvital/seamoss-backend/internal/cart"
	"github.com/caribvital/seamoss-backend/internal/catalog"
	"github.com/caribvital/seamoss-backend/pkg/logger"
	redispkg "github.com/caribvital/seamoss-backend/pkg/redis"
	"github.com/caribvital/seamoss-backend/pkg/types"
)

type memorySnapshotStore struct {
	data map[string]string
}

func (m *memorySnapshotStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return nil
}

func (m *memorySnapshotStore) Get(ctx context.Context, key string) (string, error) {
	raw, ok := m.data[key]
	if !ok {
		return "", redispkg.ErrNotFound
	}
	return raw, nil
}

func (m *memorySnapshotStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memorySnapshotStore) CartKey(session string) string {
	return "sm:cart:" + session
}

func testCartService(t *testing.T) *cartsvc.Service {
	t.Helper()

	snapshots, err := cartsvc.NewSnapshotStore(&memorySnapshotStore{data: map[string]string{}}, time.Hour)
	require.NoError(t, err)

	provider, err := catalog.NewProvider()
	require.NoError(t, err)

	svc, err := cartsvc.NewService(snapshots, provider, testControllerLogger())
	require.NoError(t, err)
	return svc
}

func testControllerLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func cartRequest(method, target, body, session string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithCartSession(req.Context(), session))
}

func decodeCartView(t *testing.T, rec *httptest.ResponseRecorder) cartsvc.View {
	t.Helper()

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestCartAddItemHandler(t *testing.T) {
	t.Parallel()

	svc := testCartService(t)
	handler := CartAddItem(svc, testControllerLogger())

	rec := httptest.NewRecorder()
	handler(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"gold-gel-16","quantity":3}`, "sess-1"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decodeCartView(t, rec)
	assert.Equal(t, 3, view.ItemCount)
	assert.True(t, view.IsOpen)
}

func TestCartAddItemHandlerClampsOversizedQuantity(t *testing.T) {
	t.Parallel()

	svc := testCartService(t)
	handler := CartAddItem(svc, testControllerLogger())

	rec := httptest.NewRecorder()
	handler(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"gold-gel-16","quantity":99}`, "sess-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeCartView(t, rec)
	assert.Equal(t, cartsvc.MaxQuantityPerItem, view.ItemCount)
}

func TestCartAddItemHandlerUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := testCartService(t)
	handler := CartAddItem(svc, testControllerLogger())

	rec := httptest.NewRecorder()
	handler(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"nope"}`, "sess-1"))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestCartAddItemHandlerRejectsMissingProduct(t *testing.T) {
	t.Parallel()

	svc := testCartService(t)
	handler := CartAddItem(svc, testControllerLogger())

	rec := httptest.NewRecorder()
	handler(rec, cartRequest(http.MethodPost, "/api/v1/cart/items", `{"quantity":1}`, "sess-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartUpdateQuantityHandler(t *testing.T) {
	t.Parallel()

	svc := testCartService(t)
	add := CartAddItem(svc, testControllerLogger())
	update := CartUpdateQuantity(svc, testControllerLogger())

	rec := httptest.NewRecorder()
	add(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"gold-gel-16","quantity":1}`, "sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	req := cartRequest(http.MethodPatch, "/api/v1/cart/items/gold-gel-16", `{"quantity":7}`, "sess-1")
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productID", "gold-gel-16")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec = httptest.NewRecorder()
	update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decodeCartView(t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 7, view.Items[0].Quantity)
}

func TestCartRestoreHandlerKeepsDrawerClosed(t *testing.T) {
	t.Parallel()

	svc := testCartService(t)
	restore := CartRestore(svc, testControllerLogger())

	rec := httptest.NewRecorder()
	restore(rec, cartRequest(http.MethodPost, "/api/v1/cart/restore",
		`{"items":[{"productId":"gold-gel-16","priceId":"price_gold_gel_16","name":"Gold Sea Moss Gel 16oz","price":24.99,"quantity":2}]}`,
		"sess-1"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decodeCartView(t, rec)
	assert.Equal(t, 2, view.ItemCount)
	assert.False(t, view.IsOpen, "restore must not open the drawer")
}

func TestCartClearHandler(t *testing.T) {
	t.Parallel()

	svc := testCartService(t)
	add := CartAddItem(svc, testControllerLogger())
	clearCart := CartClear(svc, testControllerLogger())

	rec := httptest.NewRecorder()
	add(rec, cartRequest(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"gold-gel-16","quantity":2}`, "sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	clearCart(rec, cartRequest(http.MethodDelete, "/api/v1/cart", "", "sess-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeCartView(t, rec)
	assert.Zero(t, view.ItemCount)
}
