package controller

import (
	"github.com/gofiber/fiber/v2"

	"riski-agent-be/internal/config"
	"riski-agent-be/internal/dto"
)

type ISystemController interface {
	RegisterRoutes(app *fiber.App)
	Healthz(ctx *fiber.Ctx) error
	Config(ctx *fiber.Ctx) error
}

type systemController struct {
	cfg *config.Config
}

func NewSystemController(cfg *config.Config) ISystemController {
	return &systemController{cfg: cfg}
}

func (c *systemController) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", c.Healthz)
	app.Get("/api/system/config", c.Config)
}

func (c *systemController) Healthz(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthCheckResponse{Status: "ok"})
}

func (c *systemController) Config(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.ConfigResponse{
		Version:           c.cfg.App.Version,
		LLMProvider:       c.cfg.Ai.LLMProvider,
		CheckpointBackend: c.cfg.Agent.CheckpointBackend,
	})
}
