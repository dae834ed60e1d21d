package model

import "time"

// レシートの永続化用レコード（アーカイブ）
type Receipt struct {
	ID           int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID    string        `gorm:"type:varchar(64);not null;index" json:"session_id"`
	OrderID      string        `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_id"`
	PaymentID    string        `gorm:"type:varchar(128);not null" json:"payment_id"`
	Provider     string        `gorm:"type:varchar(32);not null" json:"provider"`
	TotalAmount  float64       `gorm:"not null" json:"total_amount"`
	AmountPaid   float64       `gorm:"not null" json:"amount_paid"`
	Currency     string        `gorm:"type:varchar(8);not null" json:"currency"`
	CustomerName string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	Email        string        `gorm:"type:varchar(255);not null" json:"email"`
	Phone        string        `gorm:"type:varchar(16);not null" json:"phone"`
	Address      string        `gorm:"type:text;not null" json:"address"`
	City         string        `gorm:"type:varchar(128);not null" json:"city"`
	Pincode      string        `gorm:"type:varchar(8);not null" json:"pincode"`
	Status       ReceiptStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}

// レシート明細。価格と商品名は確定時点のスナップショット。
type ReceiptItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptID           int64     `gorm:"not null;index" json:"receipt_id"`
	ProductID           string    `gorm:"type:varchar(64);not null;index" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   float64   `gorm:"not null" json:"unit_price_snapshot"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	Discount            float64   `gorm:"not null;default:0" json:"discount"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
