package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(data any) []byte {
	raw, _ := json.Marshal(map[string]any{"data": data})
	return raw
}

func TestClient_ListProducts(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		require.Equal(t, "green tea", r.URL.Query().Get("search"))

		w.Write(envelope([]map[string]any{
			{"_id": "p1", "name": "Green Tea", "price": 4.5},
			{"_id": "p2", "name": "Green Tea Latte", "price": 6},
		}))
	}))
	defer srv.Close()

	products, err := client.New(srv.URL).ListProducts(ctx, "green tea")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "Green Tea", products[0].Name)
	assert.Equal(t, 4.5, products[0].Price)
}

func TestClient_ListProducts_NullDataBecomesEmptySlice(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": null}`))
	}))
	defer srv.Close()

	products, err := client.New(srv.URL).ListProducts(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Product not found"}`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).GetProduct(ctx, "missing")
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Product not found", apiErr.Message)
}

func TestClient_Login(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "user@example.com", req["email"])
		require.Equal(t, "sup-1", req["supabaseId"])

		w.Write(envelope(map[string]any{
			"_id":   "u1",
			"name":  "John Doe",
			"email": "user@example.com",
			"token": "jwt-token",
		}))
	}))
	defer srv.Close()

	session, err := client.New(srv.URL).Login(ctx, "user@example.com", "pw", "sup-1")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", session.Token)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, "John Doe", session.User.Name)
}

func TestClient_Profile_SendsBearerToken(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		w.Write(envelope(map[string]any{"_id": "u1", "name": "John Doe"}))
	}))
	defer srv.Close()

	user, err := client.New(srv.URL).Profile(ctx, "jwt-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestClient_OrderHistory_PassesRawPayloadThrough(t *testing.T) {
	ctx := context.Background()
	payload := `[{"_id":"o1","status":"shipped","extra":{"carrier":"dhl"}}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/myorders", r.URL.Path)
		w.Write([]byte(`{"data": ` + payload + `}`))
	}))
	defer srv.Close()

	raw, err := client.New(srv.URL).OrderHistory(ctx, "jwt-token")
	require.NoError(t, err)

	//スキーマを解釈せずそのまま返す
	assert.JSONEq(t, payload, string(raw))
}

func TestClient_ErrorWithoutEnvelopeFallsBackToStatusText(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).GetProduct(ctx, "p1")

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
