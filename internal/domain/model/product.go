package model

// 上流APIの商品。IDはドキュメントDBの_id。
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Discount    float64 `json:"discount,omitempty"`
}
