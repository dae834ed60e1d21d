package store

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// セッションごとのカートをKVに永続化する。
// カートの書き込みはCartUsecase経由のみ。ここが唯一の保存経路。
type CartStore struct {
	kv       repository.KV
	notifier *Notifier
}

func NewCartStore(kv repository.KV, notifier *Notifier) *CartStore {
	return &CartStore{kv: kv, notifier: notifier}
}

// カートを読み出す。キー無し・読み取り失敗・壊れたJSONはすべて空カート扱い。
// エラーは呼び出し側へ出さない。
func (s *CartStore) Load(ctx context.Context, sessionID string) model.Cart {
	raw, err := s.kv.Get(ctx, cartKey(sessionID))
	if err != nil {
		return model.EmptyCart()
	}

	var cart model.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return model.EmptyCart()
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart
}

// カート全体を上書き保存し、変更を通知する。差分更新はしない。
func (s *CartStore) Save(ctx context.Context, sessionID string, cart model.Cart) {
	raw, err := json.Marshal(cart)
	if err != nil {
		return
	}

	_ = s.kv.Set(ctx, cartKey(sessionID), raw)
	s.notifier.Publish(CartEvent{SessionID: sessionID, Cart: cart})
}

// 永続化されたカートを丸ごと消す。save(空カート)と等価。
func (s *CartStore) Clear(ctx context.Context, sessionID string) {
	_ = s.kv.Delete(ctx, cartKey(sessionID))
	s.notifier.Publish(CartEvent{SessionID: sessionID, Cart: model.EmptyCart()})
}

// 直近のレシートを保存する（lastOrder相当）
func (s *CartStore) SaveReceipt(ctx context.Context, sessionID string, receipt model.OrderReceipt) {
	raw, err := json.Marshal(receipt)
	if err != nil {
		return
	}
	_ = s.kv.Set(ctx, receiptKey(sessionID), raw)
}

// 直近のレシートを読み出す
func (s *CartStore) LastReceipt(ctx context.Context, sessionID string) (model.OrderReceipt, bool) {
	raw, err := s.kv.Get(ctx, receiptKey(sessionID))
	if err != nil {
		return model.OrderReceipt{}, false
	}

	var receipt model.OrderReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return model.OrderReceipt{}, false
	}
	return receipt, true
}

// 変更通知の購読口
func (s *CartStore) Subscribe() (<-chan CartEvent, func()) {
	return s.notifier.Subscribe()
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func receiptKey(sessionID string) string {
	return fmt.Sprintf("lastOrder:%s", sessionID)
}
