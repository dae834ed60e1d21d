package model

// プロバイダ呼び出しの結果ステータス
const (
	PaymentStatusCaptured  = "captured"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// 決済プロバイダが返す結果。検証が通るまでは確定扱いにしない。
type PaymentResult struct {
	Success   bool    `json:"success"`
	PaymentID string  `json:"paymentId"`
	OrderID   string  `json:"orderId"`
	Signature string  `json:"signature"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Error     string  `json:"error,omitempty"`
}
