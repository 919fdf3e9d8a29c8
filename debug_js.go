package main

import (
	webgl "github.com/seqsense/webgl-go"
	"go.uber.org/zap"
)

func showDebugInfo(gl *webgl.WebGL, log *zap.SugaredLogger) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug("failed to get debug info")
		}
	}()

	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		log.Debug("GPU info: hidden by the browser privacy setting")
		return
	}
	log.Debugw("GPU",
		"vendor", gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String(),
		"renderer", gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String(),
		"maxTextureSize", gl.GetParameter(gl.JS().Get("MAX_TEXTURE_SIZE").Int()).Int(),
	)
}
