package model

// 決済プロバイダのID
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodBasePay  = "basepay"
)

// チェックアウト入力フォーム。送信まではUI側の一時状態。
type CheckoutForm struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Pincode       string `json:"pincode"`
	PaymentMethod string `json:"paymentMethod"`
}
