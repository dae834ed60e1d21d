package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"storefront/internal/domain/model"
)

// プロバイダへ渡す決済パラメータ。
// 通貨変換は呼び出し側（チェックアウト）の責務で、ここでは変換しない。
type Params struct {
	Amount        float64
	Currency      string
	OrderID       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// 検証に使う組（プロバイダのpayment id / order id / 署名）
type Verification struct {
	PaymentID string
	OrderID   string
	Signature string
}

// 決済プロバイダのポート。IDで選択できる。
type Provider interface {
	ID() string
	Name() string
	Description() string

	// 請求通貨（"INR"ならチェックアウト側でUSDから換算して渡す）
	Currency() string

	ProcessPayment(ctx context.Context, p Params) (model.PaymentResult, error)
	VerifyPayment(ctx context.Context, v Verification) (bool, error)
}

// チェックアウト画面に出すプロバイダ情報
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
}

// 登録順を保持するプロバイダ一覧
type Registry struct {
	byID  map[string]Provider
	order []string
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{byID: map[string]Provider{}}
	for _, p := range providers {
		if _, ok := r.byID[p.ID()]; ok {
			continue
		}
		r.byID[p.ID()] = p
		r.order = append(r.order, p.ID())
	}
	return r
}

func (r *Registry) Get(id string) (Provider, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		out = append(out, Info{
			ID:          p.ID(),
			Name:        p.Name(),
			Description: p.Description(),
			Currency:    p.Currency(),
		})
	}
	return out
}

// Razorpay方式の署名: HMAC-SHA256(orderID|paymentID, secret) のhex
func signPayment(orderID string, paymentID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func validSignature(orderID string, paymentID string, signature string, secret []byte) bool {
	want := signPayment(orderID, paymentID, secret)
	return hmac.Equal([]byte(want), []byte(signature))
}
