package repository

import (
	"context"

	"github.com/fadilmartias/ai-recruiter/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db}
}

// Upsert inserts the asset or replaces the data of an existing one by name.
func (r *AssetRepository) Upsert(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "mime_type", "updated_at"}),
	}).Create(a).Error
}

func (r *AssetRepository) FindByName(ctx context.Context, name string) (*model.Asset, error) {
	var a model.Asset
	if err := r.db.WithContext(ctx).First(&a, "name = ?", name).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// ListNames returns asset names without loading their data.
func (r *AssetRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Asset{}).Order("name").Pluck("name", &names).Error
	return names, err
}
