package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ReceiptGormRepository struct {
	db *gorm.DB
}

// DI
func NewReceiptGormRepository(db *gorm.DB) *ReceiptGormRepository {
	return &ReceiptGormRepository{db: db}
}

// レシートと明細をまとめて作成する（write-once）
func (r *ReceiptGormRepository) Create(ctx context.Context, receipt model.Receipt, items []model.ReceiptItem) (model.Receipt, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return model.Receipt{}, err
	}
	return receipt, nil
}

// order_idで1件取得
func (r *ReceiptGormRepository) FindByOrderID(ctx context.Context, orderID string) (model.Receipt, []model.ReceiptItem, error) {
	var receipt model.Receipt

	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&receipt).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Receipt{}, nil, repo.ErrNotFound
	}
	if err != nil {
		return model.Receipt{}, nil, err
	}

	var items []model.ReceiptItem
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receipt.ID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return model.Receipt{}, nil, err
	}

	return receipt, items, nil
}

// セッションのレシートを新しい順に一覧
func (r *ReceiptGormRepository) ListBySessionID(ctx context.Context, sessionID string) ([]model.Receipt, error) {
	var receipts []model.Receipt

	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id desc").
		Find(&receipts).Error; err != nil {
		return []model.Receipt{}, err
	}

	return receipts, nil
}
