package model

// カート1件の明細。priceは追加時点のUSD単価。
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"imageUrl"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Discount  float64 `json:"discount,omitempty"`
}

// 明細の小計（price × quantity）
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// セッション1つにつきカート1つ。
// itemsは追加順 = 表示順。totalAmountは常に全明細の小計の和。
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}

// totalAmountを明細から再計算する
func (c *Cart) Recalculate() {
	var total float64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	c.TotalAmount = total
}

// 数量の合計（バッジ表示用）
func (c Cart) ItemCount() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// productIDの明細の位置を返す（無ければ-1）
func (c Cart) IndexOf(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
