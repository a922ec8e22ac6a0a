package controller

import (
	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/internal/pkg/serverutils"
	"doc-voicebot-be/pkg/qa"

	"github.com/gofiber/fiber/v2"
)

type ILanguageController interface {
	RegisterRoutes(r fiber.Router)
	Options(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
}

type languageController struct{}

func NewLanguageController() ILanguageController {
	return &languageController{}
}

func (c *languageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/language/v1")
	h.Get("options", c.Options)
	h.Get("resolve/:name", c.Resolve)
}

// Options returns only the languages offered by the selector; the
// resolver itself recognizes more (see Resolve).
func (c *languageController) Options(ctx *fiber.Ctx) error {
	names := qa.OfferedLanguages()
	options := make([]dto.LanguageOption, 0, len(names))
	for _, name := range names {
		options = append(options, dto.LanguageOption{
			DisplayName: name,
			Code:        qa.ResolveLanguage(name),
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show language options", dto.LanguageOptionsResponse{Options: options}))
}

func (c *languageController) Resolve(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	return ctx.JSON(serverutils.SuccessResponse("Success resolve language", dto.LanguageOption{
		DisplayName: name,
		Code:        qa.ResolveLanguage(name),
	}))
}
