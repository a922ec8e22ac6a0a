package controller

import (
	"io"

	"doc-voicebot-be/internal/pkg/serverutils"
	"doc-voicebot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Ask(ctx *fiber.Ctx) error
}

type voiceController struct {
	voiceService service.IVoiceService
}

func NewVoiceController(voiceService service.IVoiceService) IVoiceController {
	return &voiceController{
		voiceService: voiceService,
	}
}

func (c *voiceController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/voice/v1")
	for _, m := range middleware {
		h.Use(m)
	}
	h.Post("ask", c.Ask)
}

// Ask accepts a complete recording from a client-side recorder as a
// multipart "audio" part plus the session id, and runs the voice
// question pipeline.
func (c *voiceController) Ask(ctx *fiber.Ctx) error {
	sessionID := ctx.FormValue("session_id")
	if sessionID == "" {
		return serverutils.NewApiError(fiber.StatusBadRequest, "missing session_id field")
	}

	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "missing audio field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.voiceService.Ask(ctx.Context(), sessionID, audio)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Voice query processed", res))
}
