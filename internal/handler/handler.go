package handler

import (
	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"medfin-engine/internal/engine"
	"medfin-engine/internal/model"
)

// Handler is the thin HTTP surface over the analysis engine. It owns
// decoding and encoding only; all semantics live in the engine.
type Handler struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Handler {
	return &Handler{engine: e}
}

// Handle routes the two supported endpoints.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	case "/analyze":
		h.handleAnalyze(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) handleAnalyze(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var rc model.RecommendationContext
	if err := json.Unmarshal(ctx.PostBody(), &rc); err != nil {
		err = eris.Wrap(err, "decoding recommendation context")
		zap.L().Warn("bad request", zap.Error(err))
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if rc.UserID == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "user_id is required")
		return
	}

	out := h.engine.Analyze(&rc)

	body, err := json.Marshal(out)
	if err != nil {
		zap.L().Error("encoding engine output failed", zap.Error(eris.Wrap(err, "marshaling output")))
		writeError(ctx, fasthttp.StatusInternalServerError, "Internal error")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
