// Package usecase implements the business logic for item-related operations.
package usecase

import (
	"context"
	"errors"

	"mono_backend/internal/feature/items/domain/entity"
)

// ErrItemNotFound is returned when an item cannot be found by ID.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository abstracts the persistence layer for inventory items.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	FindByID(ctx context.Context, id uint) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	ListAll(ctx context.Context) ([]entity.Item, error)
	ListByUserAndStatus(ctx context.Context, userID uint, status string) ([]entity.Item, error)
}

// Fields carries the editable item attributes submitted by a form.
// No format validation is applied; status is stored as-is by convention.
type Fields struct {
	Name        string
	Description string
	URL         string
	Category    string
	Status      string
}

// ItemUsecase provides business logic for item operations.
type ItemUsecase struct {
	repo ItemRepository
}

// NewItemUsecase creates a new ItemUsecase with the given repository.
func NewItemUsecase(r ItemRepository) *ItemUsecase {
	return &ItemUsecase{repo: r}
}

// AddItem creates a new item owned by the given user.
func (u *ItemUsecase) AddItem(ctx context.Context, userID uint, f Fields) (*entity.Item, error) {
	item := &entity.Item{
		UserID:      userID,
		Name:        f.Name,
		Description: f.Description,
		URL:         f.URL,
		Category:    f.Category,
		Status:      f.Status,
	}
	if err := u.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem returns a single item by ID.
func (u *ItemUsecase) GetItem(ctx context.Context, id uint) (*entity.Item, error) {
	return u.repo.FindByID(ctx, id)
}

// EditItem replaces all editable fields of an existing item.
// Storage refreshes updated_on on every successful update.
func (u *ItemUsecase) EditItem(ctx context.Context, id uint, f Fields) (*entity.Item, error) {
	item, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = f.Name
	item.Description = f.Description
	item.URL = f.URL
	item.Category = f.Category
	item.Status = f.Status
	if err := u.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListAll returns every item, newest-updated first.
func (u *ItemUsecase) ListAll(ctx context.Context) ([]entity.Item, error) {
	return u.repo.ListAll(ctx)
}

// ListByUserAndStatus returns one user's items with the given status,
// newest-updated first.
func (u *ItemUsecase) ListByUserAndStatus(ctx context.Context, userID uint, status string) ([]entity.Item, error) {
	return u.repo.ListByUserAndStatus(ctx, userID, status)
}
