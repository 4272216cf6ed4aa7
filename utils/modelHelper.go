package utils

import (
	"context"
	"errors"

	"github.com/benela/benela_backend/config"
	"gorm.io/gorm"
)

/* DB fetching */

// fetch model from db
// (may return RecordNotFound)
func FetchModel[T any](ctx context.Context, id int, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

// fetch a page of models ordered by `order`; limit <= 0 means no limit
func FetchModels[T any](ctx context.Context, order string, skip int, limit int, scopes ...func(*gorm.DB) *gorm.DB) ([]*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Scopes(scopes...)
	if order != "" {
		dbCtx = dbCtx.Order(order)
	}
	if skip > 0 {
		dbCtx = dbCtx.Offset(skip)
	}
	if limit > 0 {
		dbCtx = dbCtx.Limit(limit)
	}
	results := make([]*T, 0)
	if err := dbCtx.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// update the columns in `updates` and reload; zero-length updates only reload
func UpdateModel[T any](ctx context.Context, id int, updates map[string]interface{}) (*T, error) {
	db := config.GetDB()
	var model T
	if len(updates) > 0 {
		result := db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, StoreError(result.Error)
		}
	}
	return FetchModel[T](ctx, id)
}

// delete by id; RecordNotFound when nothing was deleted
func DeleteModel[T any](ctx context.Context, id int) error {
	db := config.GetDB()
	var model T
	result := db.WithContext(ctx).Delete(&model, id)
	if result.Error != nil {
		return StoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrorRecordNotFound
	}
	return nil
}
