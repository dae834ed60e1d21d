package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/kv"
	"storefront/internal/payment"
	"storefront/internal/store"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ローカルで即時確定するスタブプロバイダ
type stubProvider struct{ currency string }

func (p *stubProvider) ID() string          { return "stub" }
func (p *stubProvider) Name() string        { return "Stub" }
func (p *stubProvider) Description() string { return "test provider" }
func (p *stubProvider) Currency() string    { return p.currency }

func (p *stubProvider) ProcessPayment(ctx context.Context, in payment.Params) (model.PaymentResult, error) {
	return model.PaymentResult{
		Success:   true,
		PaymentID: "pay_stub",
		OrderID:   in.OrderID,
		Signature: "sig",
		Status:    model.PaymentStatusCaptured,
		Amount:    in.Amount,
		Currency:  in.Currency,
	}, nil
}

func (p *stubProvider) VerifyPayment(ctx context.Context, v payment.Verification) (bool, error) {
	return v.Signature == "sig", nil
}

type seqIDGenerator struct{ n int }

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func newCheckoutServer(currency string) (*echo.Echo, *usecase.CartUsecase) {
	cartStore := store.NewCartStore(kv.NewMemoryKV(), store.NewNotifier())
	cartUC := usecase.NewCartUsecase(cartStore)

	checkoutUC := usecase.NewCheckoutUsecase(
		cartStore,
		payment.NewRegistry(&stubProvider{currency: currency}),
		validator.NewCheckoutValidator(),
		nil,
		&seqIDGenerator{},
		&fixedClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
		83,
	)

	e := echo.New()
	handler.NewCheckoutHandler(checkoutUC).RegisterRoutes(e)
	handler.NewCartHandler(cartUC).RegisterRoutes(e)
	return e, cartUC
}

func checkoutBody(method string) string {
	raw, _ := json.Marshal(map[string]string{
		"name":          "John Doe",
		"email":         "user@example.com",
		"phone":         "9876543210",
		"address":       "1 Marine Drive",
		"city":          "Mumbai",
		"pincode":       "400001",
		"paymentMethod": method,
	})
	return string(raw)
}

func TestCheckoutHandler_ConfirmsAndClearsCart(t *testing.T) {
	e, _ := newCheckoutServer("USD")
	ck := sessionCookie("s1")

	doJSON(e, http.MethodPost, "/cart/items", `{"productId":"a","name":"A","price":10,"quantity":2}`, ck)

	rec := doJSON(e, http.MethodPost, "/checkout", checkoutBody("stub"), ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		State   string              `json:"state"`
		Receipt *model.OrderReceipt `json:"receipt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "CONFIRMED", out.State)
	require.NotNil(t, out.Receipt)
	assert.Equal(t, "ORDER_id-1", out.Receipt.OrderID)
	assert.Equal(t, float64(20), out.Receipt.TotalAmount)

	//確定後のカートは空
	cart := decodeCart(t, doJSON(e, http.MethodGet, "/cart", "", ck))
	assert.Empty(t, cart.Items)
}

func TestCheckoutHandler_ValidationErrorIs400(t *testing.T) {
	e, _ := newCheckoutServer("USD")
	ck := sessionCookie("s1")

	doJSON(e, http.MethodPost, "/cart/items", `{"productId":"a","name":"A","price":10,"quantity":1}`, ck)

	body := `{"name":"John","email":"bad-email","phone":"9876543210","address":"x","city":"y","pincode":"400001","paymentMethod":"stub"}`
	rec := doJSON(e, http.MethodPost, "/checkout", body, ck)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Please enter a valid email address"}`, rec.Body.String())
}

func TestCheckoutHandler_EmptyCartIs400(t *testing.T) {
	e, _ := newCheckoutServer("USD")

	rec := doJSON(e, http.MethodPost, "/checkout", checkoutBody("stub"), sessionCookie("s1"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Your cart is empty"}`, rec.Body.String())
}

func TestCheckoutHandler_Providers(t *testing.T) {
	e, _ := newCheckoutServer("INR")

	rec := doJSON(e, http.MethodGet, "/checkout/providers", "", sessionCookie("s1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []payment.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "stub", infos[0].ID)
	assert.Equal(t, "INR", infos[0].Currency)
}

func TestCheckoutHandler_LastOrder(t *testing.T) {
	e, _ := newCheckoutServer("USD")
	ck := sessionCookie("s1")

	//注文前は404
	rec := doJSON(e, http.MethodGet, "/checkout/last-order", "", ck)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doJSON(e, http.MethodPost, "/cart/items", `{"productId":"a","name":"A","price":10,"quantity":1}`, ck)
	require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/checkout", checkoutBody("stub"), ck).Code)

	rec = doJSON(e, http.MethodGet, "/checkout/last-order", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var receipt model.OrderReceipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, "ORDER_id-1", receipt.OrderID)
	assert.Equal(t, model.ReceiptStatusConfirmed, receipt.Status)
}
