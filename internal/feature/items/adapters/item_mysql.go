// Package adapters はitemsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mono_backend/internal/feature/items/domain/entity"
	"mono_backend/internal/feature/items/usecase"
)

// itemMySQL はItemRepositoryインターフェースのMySQL実装です。
type itemMySQL struct {
	db *gorm.DB
}

// itemMySQLがItemRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ItemRepository = (*itemMySQL)(nil)

// NewItemMySQL は指定されたDB接続でitemMySQLリポジトリの新しいインスタンスを生成します。
func NewItemMySQL(db *gorm.DB) *itemMySQL {
	return &itemMySQL{db: db}
}

// Create はアイテムをデータベースに追加します。
// created_on / updated_on はストレージ（GORMのautoCreateTime/autoUpdateTime）が設定します。
func (r *itemMySQL) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID はIDでアイテムを取得します。
// アイテムが存在しない場合、usecase.ErrItemNotFoundを返します。
func (r *itemMySQL) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update は既存アイテムの変更を保存します。updated_onは保存のたびに更新されます。
func (r *itemMySQL) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// ListAll はすべてのアイテムをupdated_onの降順で返します。
func (r *itemMySQL) ListAll(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).
		Order("updated_on DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByUserAndStatus は指定ユーザー・指定ステータスのアイテムをupdated_onの降順で返します。
func (r *itemMySQL) ListByUserAndStatus(ctx context.Context, userID uint, status string) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Order("updated_on DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
