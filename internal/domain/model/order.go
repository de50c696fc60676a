package model

import "time"

// 注文。合計はチェックアウト時に一度だけ計算し、以後再計算しない。
type Order struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	Reference  string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`
	OrderDate  time.Time `gorm:"not null" json:"order_date"`
	TotalCents int64     `gorm:"not null" json:"total_cents"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
