package handler

import (
	"context"

	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/gofiber/fiber/v2"
)

type AssetGetter interface {
	Get(ctx context.Context, name string) (*model.Asset, error)
}

type AssetHandler struct {
	uc AssetGetter
}

func NewAssetHandler(uc AssetGetter) *AssetHandler {
	return &AssetHandler{uc: uc}
}

func (h *AssetHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/assets/:name", h.Get)
}

func (h *AssetHandler) Get(c *fiber.Ctx) error {
	asset, err := h.uc.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, asset.MimeType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(asset.Data)
}
