package model

import "time"

type ReceiptStatus string

const (
	ReceiptStatusConfirmed ReceiptStatus = "confirmed"
	ReceiptStatusCancelled ReceiptStatus = "cancelled"
)

// 決済確定時点のスナップショット。一度作ったら書き換えない。
type OrderReceipt struct {
	OrderID      string        `json:"orderId"`
	PaymentID    string        `json:"paymentId"`
	Provider     string        `json:"provider"`
	Items        []CartItem    `json:"items"`
	TotalAmount  float64       `json:"totalAmount"`
	AmountPaid   float64       `json:"amountPaid"`
	Currency     string        `json:"currency"`
	CustomerInfo CheckoutForm  `json:"customerInfo"`
	Timestamp    time.Time     `json:"timestamp"`
	Status       ReceiptStatus `json:"status"`
}
