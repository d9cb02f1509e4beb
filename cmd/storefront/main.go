package main

import (
	"context"

	"github.com/niksmo/qkart/config"
	"github.com/niksmo/qkart/internal/app"
	"github.com/niksmo/qkart/pkg/sigctx"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	storefront.Close(ctx)
}
