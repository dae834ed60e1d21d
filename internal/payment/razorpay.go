package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"storefront/internal/domain/model"
)

const razorpayBaseURL = "https://api.razorpay.com"

// Razorpay実装。Orders APIで注文を作り、署名で検証する。
// デモ構成のため実際の請求は発生しない（本家のcheckoutモーダルは介さず、
// 作成した注文に対してcaptured相当の結果を署名付きで返す）。
type RazorpayProvider struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayProvider(keyID string, keySecret string, baseURL string) *RazorpayProvider {
	if baseURL == "" {
		baseURL = razorpayBaseURL
	}
	return &RazorpayProvider{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *RazorpayProvider) ID() string          { return model.PaymentMethodRazorpay }
func (p *RazorpayProvider) Name() string        { return "Razorpay" }
func (p *RazorpayProvider) Description() string { return "UPI, cards, netbanking (INR)" }
func (p *RazorpayProvider) Currency() string    { return "INR" }

// Orders APIのリクエスト/レスポンス
type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"` // 最小単位（paise）
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (p *RazorpayProvider) ProcessPayment(ctx context.Context, in Params) (model.PaymentResult, error) {
	reqBody := razorpayOrderRequest{
		Amount:   toMinorUnits(in.Amount),
		Currency: in.Currency,
		Receipt:  in.OrderID,
	}

	raw, err := json.Marshal(reqBody)
	if err != nil {
		return model.PaymentResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/orders", bytes.NewReader(raw))
	if err != nil {
		return model.PaymentResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.keyID, p.keySecret)

	resp, err := p.client.Do(req)
	if err != nil {
		//ユーザーが決済を閉じた（context取り消し）は失敗と区別する
		if errors.Is(err, context.Canceled) {
			return model.PaymentResult{
				Success:  false,
				OrderID:  in.OrderID,
				Status:   model.PaymentStatusCancelled,
				Amount:   in.Amount,
				Currency: in.Currency,
			}, nil
		}
		return model.PaymentResult{}, fmt.Errorf("razorpay order create failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.PaymentResult{
			Success:  false,
			OrderID:  in.OrderID,
			Status:   model.PaymentStatusFailed,
			Amount:   in.Amount,
			Currency: in.Currency,
			Error:    fmt.Sprintf("razorpay returned %d", resp.StatusCode),
		}, nil
	}

	var order razorpayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return model.PaymentResult{}, fmt.Errorf("razorpay response decode failed: %w", err)
	}

	//デモ決済: 作成した注文に対しpayment idを払い出し、本家と同じ方式で署名する
	paymentID := "pay_" + order.ID
	return model.PaymentResult{
		Success:   true,
		PaymentID: paymentID,
		OrderID:   order.ID,
		Signature: signPayment(order.ID, paymentID, []byte(p.keySecret)),
		Status:    model.PaymentStatusCaptured,
		Amount:    in.Amount,
		Currency:  order.Currency,
	}, nil
}

// razorpay_signature検証: HMAC-SHA256(orderID|paymentID, key_secret)
func (p *RazorpayProvider) VerifyPayment(ctx context.Context, v Verification) (bool, error) {
	if v.PaymentID == "" || v.OrderID == "" || v.Signature == "" {
		return false, nil
	}
	return validSignature(v.OrderID, v.PaymentID, v.Signature, []byte(p.keySecret)), nil
}

// ドル等の主単位をpaise/cent等の最小単位へ
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
