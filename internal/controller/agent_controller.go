package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"riski-agent-be/internal/dto"
	"riski-agent-be/internal/pkg/logger"
	"riski-agent-be/internal/pkg/serverutils"
	"riski-agent-be/pkg/agent/graph"
	"riski-agent-be/pkg/agent/stream"
	"riski-agent-be/pkg/llm"
)

// runTimeout bounds one agent turn end to end.
const runTimeout = 5 * time.Minute

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Invoke(ctx *fiber.Ctx) error
}

type agentController struct {
	graph *graph.Graph
	bus   *stream.Bus
	log   logger.ILogger
}

func NewAgentController(g *graph.Graph, bus *stream.Bus, log logger.ILogger) IAgentController {
	return &agentController{graph: g, bus: bus, log: log}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ag-ui")
	h.Post("/riskiagent", c.Invoke)
}

// Invoke drives one turn and streams the filtered graph events back as
// server-sent events.
func (c *agentController) Invoke(ctx *fiber.Ctx) error {
	var req dto.RunAgentInput
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	runId := req.RunId
	if runId == "" {
		runId = uuid.NewString()
	}

	incoming := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		incoming = append(incoming, llm.Message{
			ID:      m.Id,
			Role:    m.Role,
			Content: m.Content,
		})
	}

	// The stream outlives the handler; detach from the request context.
	runCtx, cancel := context.WithTimeout(context.Background(), runTimeout)

	events, err := c.bus.Subscribe(runCtx, runId)
	if err != nil {
		cancel()
		return fmt.Errorf("subscribe to run events: %w", err)
	}

	go func() {
		if _, err := c.graph.Run(runCtx, req.ThreadId, runId, incoming); err != nil {
			c.log.Error("controller", "Agent run failed", map[string]interface{}{
				"thread": req.ThreadId,
				"run":    runId,
				"error":  err.Error(),
			})
		}
	}()

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for ev := range events {
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return // client went away
			}
			if err := w.Flush(); err != nil {
				return
			}
			if ev.Type == stream.EventRunFinished || ev.Type == stream.EventRunError {
				return
			}
		}
	}))

	return nil
}
