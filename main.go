package main

import (
	"os"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"medfin-engine/internal/billcheck"
	"medfin-engine/internal/engine"
	"medfin-engine/internal/handler"
	"medfin-engine/internal/programcatalog"
	"medfin-engine/internal/rank"
	"medfin-engine/internal/recommend"
	"medfin-engine/internal/risk"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	checker := billcheck.New(billcheck.DefaultTables())
	eng := engine.New(
		risk.New(checker),
		recommend.New(checker, programcatalog.Load()),
		rank.New(nil),
	)
	h := handler.New(eng)

	zap.L().Info("medfin engine starting", zap.String("port", port))
	if err := fasthttp.ListenAndServe(":"+port, h.Handle); err != nil {
		zap.L().Fatal("server failed", zap.Error(err))
	}
}
