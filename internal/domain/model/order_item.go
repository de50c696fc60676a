package model

import "time"

// 注文明細。price_at_purchaseは購入時点の価格スナップショット（不変）。
type OrderItem struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID              int64     `gorm:"not null;index" json:"order_id"`
	ProductID            int64     `gorm:"not null;index" json:"product_id"`
	Quantity             int64     `gorm:"not null" json:"quantity"`
	PriceAtPurchaseCents int64     `gorm:"column:price_at_purchase_cents;not null" json:"price_at_purchase_cents"`
	CreatedAt            time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
