package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/gabriel-vasile/mimetype"
)

type AssetUsecase struct {
	assets AssetStore
}

func NewAssetUsecase(assets AssetStore) *AssetUsecase {
	return &AssetUsecase{assets: assets}
}

// Upload stores data under name, replacing any previous asset. An empty
// mimeType is sniffed from the content.
func (uc *AssetUsecase) Upload(ctx context.Context, name string, data []byte, mimeType string) (*model.Asset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("asset name is required")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("asset %q is empty", name)
	}
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	a := &model.Asset{Name: name, Data: data, MimeType: mimeType}
	if err := uc.assets.Upsert(ctx, a); err != nil {
		return nil, fmt.Errorf("store asset %q: %w", name, err)
	}
	return a, nil
}

func (uc *AssetUsecase) Get(ctx context.Context, name string) (*model.Asset, error) {
	return uc.assets.FindByName(ctx, name)
}

func (uc *AssetUsecase) List(ctx context.Context) ([]string, error) {
	return uc.assets.ListNames(ctx)
}
