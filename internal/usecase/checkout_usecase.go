package usecase

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/payment"
	repo "storefront/internal/repository"
	"storefront/internal/store"
)

// 1回のチェックアウト試行の状態
type CheckoutState string

const (
	CheckoutStateEditing         CheckoutState = "EDITING"
	CheckoutStateValidating      CheckoutState = "VALIDATING"
	CheckoutStateAwaitingPayment CheckoutState = "AWAITING_PAYMENT"
	CheckoutStateVerifying       CheckoutState = "VERIFYING"
	CheckoutStateConfirmed       CheckoutState = "CONFIRMED"
	CheckoutStateCancelled       CheckoutState = "CANCELLED"
	CheckoutStateFailed          CheckoutState = "FAILED"
)

// 注文IDの採番
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// フォーム検証は validator パッケージが実装
type CheckoutValidator interface {
	ValidateCheckout(form model.CheckoutForm) error
}

// CheckoutUsecase は1回のチェックアウト試行を
// Validating → AwaitingPayment → Verifying → Confirmed の順で進める。
// カートを消すのはConfirmedへの遷移だけ。失敗・キャンセルではカートに触らない。
type CheckoutUsecase struct {
	store     *store.CartStore
	providers *payment.Registry
	validator CheckoutValidator
	receipts  repo.ReceiptRepository // nilならアーカイブなし
	idGen     IDGenerator
	clock     Clock

	// USD→INRの固定換算レート
	usdToINRRate float64

	// セッションごとの多重送信ガード
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutUsecase(
	s *store.CartStore,
	providers *payment.Registry,
	validator CheckoutValidator,
	receipts repo.ReceiptRepository,
	idGen IDGenerator,
	clock Clock,
	usdToINRRate float64,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		store:        s,
		providers:    providers,
		validator:    validator,
		receipts:     receipts,
		idGen:        idGen,
		clock:        clock,
		usdToINRRate: usdToINRRate,
		inFlight:     map[string]bool{},
	}
}

type CheckoutOutput struct {
	State   CheckoutState       `json:"state"`
	Receipt *model.OrderReceipt `json:"receipt,omitempty"`
}

// チェックアウト1回分。リトライは毎回新しい注文IDの新規試行として扱う。
func (u *CheckoutUsecase) Checkout(ctx context.Context, sessionID string, form model.CheckoutForm) (CheckoutOutput, error) {
	if sessionID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	// 決済中の再送信を拒否（同一カートスナップショットの競合防止）
	if !u.acquire(sessionID) {
		return CheckoutOutput{}, NewHTTPError(http.StatusConflict, "checkout already in progress")
	}
	defer u.release(sessionID)

	// Validating: 最初に失敗した項目のメッセージで中断
	if err := u.validator.ValidateCheckout(form); err != nil {
		return CheckoutOutput{State: CheckoutStateEditing}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart := u.store.Load(ctx, sessionID)
	if len(cart.Items) == 0 {
		return CheckoutOutput{State: CheckoutStateEditing}, NewHTTPError(http.StatusBadRequest, "Your cart is empty")
	}

	provider, ok := u.providers.Get(form.PaymentMethod)
	if !ok {
		return CheckoutOutput{State: CheckoutStateEditing}, NewHTTPError(http.StatusBadRequest, "Unknown payment method")
	}

	// AwaitingPayment: カート合計はUSD建て。INRプロバイダには固定レートで換算して渡す。
	amount := cart.TotalAmount
	currency := "USD"
	if provider.Currency() == "INR" {
		amount = cart.TotalAmount * u.usdToINRRate
		currency = "INR"
	}

	// 試行ごとに新しい注文ID
	orderID := "ORDER_" + u.idGen.NewID()

	result, err := provider.ProcessPayment(ctx, payment.Params{
		Amount:        amount,
		Currency:      currency,
		OrderID:       orderID,
		CustomerName:  form.Name,
		CustomerEmail: form.Email,
		CustomerPhone: form.Phone,
	})
	if err != nil {
		// 自動リトライはしない。一度だけユーザーに返す。
		return CheckoutOutput{State: CheckoutStateFailed}, NewHTTPError(http.StatusBadGateway, "Payment processing failed. Please try again.")
	}

	if !result.Success {
		// ユーザーによるキャンセルは失敗と区別し、エラーメッセージを出さない
		if result.Status == model.PaymentStatusCancelled {
			return CheckoutOutput{State: CheckoutStateCancelled}, nil
		}

		msg := result.Error
		if msg == "" {
			msg = "Payment failed. Please try again."
		}
		return CheckoutOutput{State: CheckoutStateFailed}, NewHTTPError(http.StatusBadGateway, msg)
	}

	// Verifying: 署名検証が通ったものだけ先へ進める
	verified, err := provider.VerifyPayment(ctx, payment.Verification{
		PaymentID: result.PaymentID,
		OrderID:   result.OrderID,
		Signature: result.Signature,
	})
	if err != nil || !verified {
		return CheckoutOutput{State: CheckoutStateFailed}, NewHTTPError(http.StatusBadGateway, "Payment verification failed. Please contact support.")
	}

	// Confirmed: ここが唯一カートを消す遷移。
	// 検証前に消さないことで、失敗・キャンセル時のカート消失を防ぐ。
	receipt := model.OrderReceipt{
		OrderID:      orderID,
		PaymentID:    result.PaymentID,
		Provider:     provider.ID(),
		Items:        cart.Items,
		TotalAmount:  cart.TotalAmount,
		AmountPaid:   amount,
		Currency:     currency,
		CustomerInfo: form,
		Timestamp:    u.clock.Now(),
		Status:       model.ReceiptStatusConfirmed,
	}

	u.store.SaveReceipt(ctx, sessionID, receipt)
	u.store.Clear(ctx, sessionID)
	u.archive(ctx, sessionID, receipt)

	return CheckoutOutput{State: CheckoutStateConfirmed, Receipt: &receipt}, nil
}

// 直近のレシート（lastOrder相当）
func (u *CheckoutUsecase) LastOrder(ctx context.Context, sessionID string) (model.OrderReceipt, error) {
	receipt, ok := u.store.LastReceipt(ctx, sessionID)
	if !ok {
		return model.OrderReceipt{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return receipt, nil
}

// 選択可能なプロバイダ一覧
func (u *CheckoutUsecase) Providers() []payment.Info {
	return u.providers.List()
}

// レシートをアーカイブへ書く。決済は確定済みなので失敗しても試行は成功のまま。
func (u *CheckoutUsecase) archive(ctx context.Context, sessionID string, r model.OrderReceipt) {
	if u.receipts == nil {
		return
	}

	rec := model.Receipt{
		SessionID:    sessionID,
		OrderID:      r.OrderID,
		PaymentID:    r.PaymentID,
		Provider:     r.Provider,
		TotalAmount:  r.TotalAmount,
		AmountPaid:   r.AmountPaid,
		Currency:     r.Currency,
		CustomerName: r.CustomerInfo.Name,
		Email:        r.CustomerInfo.Email,
		Phone:        r.CustomerInfo.Phone,
		Address:      r.CustomerInfo.Address,
		City:         r.CustomerInfo.City,
		Pincode:      r.CustomerInfo.Pincode,
		Status:       r.Status,
		CreatedAt:    r.Timestamp,
	}

	items := make([]model.ReceiptItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, model.ReceiptItem{
			ProductID:           it.ProductID,
			ProductNameSnapshot: it.Name,
			UnitPriceSnapshot:   it.Price,
			Quantity:            it.Quantity,
			Discount:            it.Discount,
		})
	}

	if _, err := u.receipts.Create(ctx, rec, items); err != nil {
		log.Printf("receipt archive failed order_id=%s: %v", r.OrderID, err)
	}
}

func (u *CheckoutUsecase) acquire(sessionID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.inFlight[sessionID] {
		return false
	}
	u.inFlight[sessionID] = true
	return true
}

func (u *CheckoutUsecase) release(sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.inFlight, sessionID)
}
