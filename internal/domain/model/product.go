package model

import "time"

// 商品。価格は円やドルの最小単位（cents）で持つ。
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	ImageURL    string    `gorm:"type:varchar(300)" json:"image_url"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	Stock       int64     `gorm:"not null" json:"stock"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
