package payment

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
)

// BasePay（USDC決済）。デモ実装でローカル即時確定、署名方式はRazorpayと同じ。
type BasePayProvider struct {
	secret []byte
	idGen  IDGenerator
}

// 決済IDの採番ポート（mainでuuidを注入）
type IDGenerator interface {
	NewID() string
}

func NewBasePayProvider(secret string, idGen IDGenerator) *BasePayProvider {
	return &BasePayProvider{secret: []byte(secret), idGen: idGen}
}

func (p *BasePayProvider) ID() string          { return model.PaymentMethodBasePay }
func (p *BasePayProvider) Name() string        { return "BasePay" }
func (p *BasePayProvider) Description() string { return "Pay with USDC on Base" }
func (p *BasePayProvider) Currency() string    { return "USD" }

func (p *BasePayProvider) ProcessPayment(ctx context.Context, in Params) (model.PaymentResult, error) {
	//閉じられたウォレットダイアログはキャンセル扱い
	if err := ctx.Err(); err != nil {
		return model.PaymentResult{
			Success:  false,
			OrderID:  in.OrderID,
			Status:   model.PaymentStatusCancelled,
			Amount:   in.Amount,
			Currency: in.Currency,
		}, nil
	}

	paymentID := fmt.Sprintf("basepay_%s", p.idGen.NewID())
	return model.PaymentResult{
		Success:   true,
		PaymentID: paymentID,
		OrderID:   in.OrderID,
		Signature: signPayment(in.OrderID, paymentID, p.secret),
		Status:    model.PaymentStatusCaptured,
		Amount:    in.Amount,
		Currency:  in.Currency,
	}, nil
}

func (p *BasePayProvider) VerifyPayment(ctx context.Context, v Verification) (bool, error) {
	if v.PaymentID == "" || v.OrderID == "" || v.Signature == "" {
		return false, nil
	}
	return validSignature(v.OrderID, v.PaymentID, v.Signature, p.secret), nil
}
