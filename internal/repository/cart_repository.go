package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	// 無ければ作成（ユーザーにつき1つ）
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	// 明細の全削除。カート行自体は残す。
	Clear(ctx context.Context, cartID int64) error
}
