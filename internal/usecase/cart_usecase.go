package usecase

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/store"
)

// CartUsecase は /cart の業務ロジックです。
// どの操作も「読む→次のカートを計算→保存→返す」の形。
// 不正な入力はクランプか無視で吸収し、エラーにはしない。
type CartUsecase struct {
	store *store.CartStore
}

func NewCartUsecase(s *store.CartStore) *CartUsecase {
	return &CartUsecase{store: s}
}

// カートへ追加する商品の入力DTO
type AddItemInput struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"imageUrl"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Discount  float64 `json:"discount"`
}

// 現在のカートを返す
func (u *CartUsecase) Get(ctx context.Context, sessionID string) model.Cart {
	return u.store.Load(ctx, sessionID)
}

// カートへ追加。同一productIdは数量加算、無ければ末尾に追加。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddItemInput) model.Cart {
	cart := u.store.Load(ctx, sessionID)
	cart = applyAdd(cart, in)

	u.store.Save(ctx, sessionID, cart)
	return cart
}

// 数量を指定値に変更。1未満は削除と同じ。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, productID string, quantity int64) model.Cart {
	cart := u.store.Load(ctx, sessionID)

	idx := cart.IndexOf(productID)
	if idx < 0 {
		//無いproductIdはno-op
		return cart
	}

	if quantity < 1 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}
	cart.Recalculate()

	u.store.Save(ctx, sessionID, cart)
	return cart
}

// 明細を削除。無ければno-op（エラーにしない）。
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, productID string) model.Cart {
	cart := u.store.Load(ctx, sessionID)

	idx := cart.IndexOf(productID)
	if idx < 0 {
		return cart
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.Recalculate()

	u.store.Save(ctx, sessionID, cart)
	return cart
}

// まとめて追加（注文履歴からの再注文用）。
// 入力内の重複productIdも単発のAddItemと同じく加算される。
func (u *CartUsecase) AddItems(ctx context.Context, sessionID string, items []AddItemInput) model.Cart {
	cart := u.store.Load(ctx, sessionID)

	for _, in := range items {
		cart = applyAdd(cart, in)
	}

	u.store.Save(ctx, sessionID, cart)
	return cart
}

// カートを空にする
func (u *CartUsecase) Clear(ctx context.Context, sessionID string) model.Cart {
	u.store.Clear(ctx, sessionID)
	return model.EmptyCart()
}

// 数量合計（バッジ用）
func (u *CartUsecase) ItemCount(ctx context.Context, sessionID string) int64 {
	return u.store.Load(ctx, sessionID).ItemCount()
}

// 変更通知の購読（SSE配信用）
func (u *CartUsecase) Subscribe() (<-chan store.CartEvent, func()) {
	return u.store.Subscribe()
}

// 追加1件をカートに適用して合計を再計算する
func applyAdd(cart model.Cart, in AddItemInput) model.Cart {
	if in.ProductID == "" {
		return cart
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	if idx := cart.IndexOf(in.ProductID); idx >= 0 {
		cart.Items[idx].Quantity += qty
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: in.ProductID,
			Name:      in.Name,
			ImageURL:  in.ImageURL,
			Price:     clampPrice(in.Price),
			Quantity:  qty,
			Discount:  clampDiscount(in.Discount),
		})
	}

	cart.Recalculate()
	return cart
}

// priceは非負
func clampPrice(p float64) float64 {
	if p < 0 {
		return 0
	}
	return p
}

// discountは0〜100のパーセント
func clampDiscount(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}
