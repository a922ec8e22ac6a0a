package controller

import (
	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/internal/pkg/serverutils"
	"doc-voicebot-be/pkg/speech"

	"github.com/gofiber/fiber/v2"
)

type ISpeechController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Synthesize(ctx *fiber.Ctx) error
}

type speechController struct {
	synthesizer speech.Synthesizer
}

func NewSpeechController(synthesizer speech.Synthesizer) ISpeechController {
	return &speechController{
		synthesizer: synthesizer,
	}
}

func (c *speechController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/speech/v1")
	for _, m := range middleware {
		h.Use(m)
	}
	h.Post("synthesize", c.Synthesize)
}

// Synthesize streams the MP3 rendering of the given text.
func (c *speechController) Synthesize(ctx *fiber.Ctx) error {
	var req dto.SynthesizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	mp3, err := c.synthesizer.Synthesize(ctx.Context(), req.Text, req.LanguageCode)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadGateway, err.Error())
	}

	ctx.Set("Content-Type", "audio/mpeg")
	return ctx.Send(mp3)
}
