package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 確定済みレシートのアーカイブ。書き込みは作成のみ（write-once）。
type ReceiptRepository interface {
	Create(ctx context.Context, receipt model.Receipt, items []model.ReceiptItem) (model.Receipt, error)
	FindByOrderID(ctx context.Context, orderID string) (model.Receipt, []model.ReceiptItem, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]model.Receipt, error)
}
