package main

import (
	"context"
	"os"
	"syscall/js"

	"go.uber.org/zap/zapcore"

	"github.com/seqsense/pcgallery/gallery"
)

const configPath = "pcgallery.yaml"

func main() {
	log := newLogger(zapcore.Lock(os.Stdout), zapcore.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())

	f := fetcher{}
	cfg := gallery.DefaultConfig()
	if b, err := f.Fetch(ctx, configPath); err != nil {
		log.Debugw("using default config", "error", err)
	} else if cfg, err = gallery.LoadConfig(b); err != nil {
		log.Errorw("invalid config", "path", configPath, "error", err)
		return
	}

	g, err := gallery.New(cfg, f, newScheduler(), newPage(log), log)
	if err != nil {
		log.Errorw("failed to create gallery", "error", err)
		return
	}

	cleanup := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cancel()
		if err := g.Cleanup(); err != nil {
			log.Warnw("cleanup", "error", err)
			return errorToJS(err)
		}
		return nil
	})
	js.Global().Set("pcgalleryCleanup", cleanup)
	js.Global().Call("addEventListener", "beforeunload", cleanup)

	installToggles(g, log)

	if err := g.Load(ctx); err != nil {
		log.Errorw("failed to load gallery", "error", err)
	}

	select {}
}
