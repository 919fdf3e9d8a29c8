package main

import (
	"syscall/js"

	"github.com/seqsense/pcgol/mat"
	webgl "github.com/seqsense/webgl-go"
	"go.uber.org/zap"

	"github.com/seqsense/pcgallery/cloud"
	"github.com/seqsense/pcgallery/gallery"
	"github.com/seqsense/pcgallery/overlay"
)

const (
	aVertexPosition = 0
	aVertexColor    = 1
)

type pointsProgram struct {
	program webgl.Program

	modelView, projection webgl.Location
	color                 webgl.Location
	pointSize, scale      webgl.Location
	sizeAttenuation       webgl.Location
	vertexColors          webgl.Location
	opacity               webgl.Location
}

type meshProgram struct {
	program webgl.Program

	modelView, projection, model webgl.Location
	color, opacity               webgl.Location
}

type assetBuffers struct {
	asset     *cloud.Asset
	positions webgl.Buffer
	colors    webgl.Buffer
}

type renderer struct {
	gl     *webgl.WebGL
	canvas js.Value
	log    *zap.SugaredLogger

	points pointsProgram
	mesh   meshProgram

	cloud    *assetBuffers
	geometry map[*overlay.Geometry]webgl.Buffer

	width, height int
}

func newRenderer(canvas js.Value, log *zap.SugaredLogger) (*renderer, error) {
	gl, err := webgl.New(canvas)
	if err != nil {
		return nil, err
	}
	showDebugInfo(gl, log)

	pp, err := newProgram(gl, vsPointsSource, fsSource)
	if err != nil {
		return nil, err
	}
	mp, err := newProgram(gl, vsMeshSource, fsSource)
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &renderer{
		gl:     gl,
		canvas: canvas,
		log:    log,
		points: pointsProgram{
			program:         pp,
			modelView:       gl.GetUniformLocation(pp, "uModelViewMatrix"),
			projection:      gl.GetUniformLocation(pp, "uProjectionMatrix"),
			color:           gl.GetUniformLocation(pp, "uColor"),
			pointSize:       gl.GetUniformLocation(pp, "uPointSize"),
			scale:           gl.GetUniformLocation(pp, "uScale"),
			sizeAttenuation: gl.GetUniformLocation(pp, "uSizeAttenuation"),
			vertexColors:    gl.GetUniformLocation(pp, "uVertexColors"),
			opacity:         gl.GetUniformLocation(pp, "uOpacity"),
		},
		mesh: meshProgram{
			program:    mp,
			modelView:  gl.GetUniformLocation(mp, "uModelViewMatrix"),
			projection: gl.GetUniformLocation(mp, "uProjectionMatrix"),
			model:      gl.GetUniformLocation(mp, "uModelMatrix"),
			color:      gl.GetUniformLocation(mp, "uColor"),
			opacity:    gl.GetUniformLocation(mp, "uOpacity"),
		},
		geometry: make(map[*overlay.Geometry]webgl.Buffer),
	}, nil
}

func (r *renderer) ClientSize() (int, int) {
	return r.gl.Canvas.ClientWidth(), r.gl.Canvas.ClientHeight()
}

func (r *renderer) BindControls(o *gallery.Orbit) {
	newGesture(o, r.canvas, r.gl.Canvas.ClientHeight).bind(r.gl.Canvas)
}

func (r *renderer) Render(s *gallery.Scene, projection, view mat.Mat4) error {
	gl := r.gl
	if gl.IsContextLost() {
		return errContextLost
	}

	w, h := r.ClientSize()
	if w != r.width || h != r.height {
		r.width, r.height = w, h
		gl.Canvas.SetWidth(w)
		gl.Canvas.SetHeight(h)
		gl.Viewport(0, 0, w, h)
	}

	bg := s.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if s.Asset != nil && s.Asset.Len() > 0 {
		r.drawPoints(s.Asset, s.Points, projection, view)
	}
	r.drawMeshes(s.Overlay, projection, view)
	return nil
}

func (r *renderer) drawPoints(a *cloud.Asset, m gallery.Material, projection, view mat.Mat4) {
	gl := r.gl
	if r.cloud == nil || r.cloud.asset != a {
		r.releaseCloud()
		r.cloud = &assetBuffers{
			asset:     a,
			positions: r.upload(a.Positions),
			colors:    r.upload(a.Colors),
		}
	}

	p := &r.points
	gl.UseProgram(p.program)
	r.uniformMatrix(p.projection, projection)
	r.uniformMatrix(p.modelView, view)
	r.uniformVec3(p.color, m.Color)
	gl.Uniform1f(p.pointSize, m.Size)
	gl.Uniform1f(p.scale, float32(r.height)/2)
	gl.Uniform1i(p.sizeAttenuation, boolToInt(m.SizeAttenuation))
	gl.Uniform1i(p.vertexColors, boolToInt(m.VertexColors))
	gl.Uniform1f(p.opacity, m.Opacity)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.cloud.positions)
	gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(aVertexPosition)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cloud.colors)
	gl.VertexAttribPointer(aVertexColor, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(aVertexColor)

	gl.DrawArrays(gl.POINTS, 0, a.Len())
	gl.JS().Call("disableVertexAttribArray", aVertexColor)
}

func (r *renderer) drawMeshes(meshes []gallery.Mesh, projection, view mat.Mat4) {
	gl := r.gl
	used := make(map[*overlay.Geometry]bool, len(meshes))

	if len(meshes) > 0 {
		p := &r.mesh
		gl.UseProgram(p.program)
		r.uniformMatrix(p.projection, projection)
		r.uniformMatrix(p.modelView, view)

		for _, m := range meshes {
			buf, ok := r.geometry[m.Geometry]
			if !ok {
				buf = r.upload(m.Geometry.Triangles())
				r.geometry[m.Geometry] = buf
			}
			used[m.Geometry] = true

			r.uniformMatrix(p.model, m.Transform)
			r.uniformVec3(p.color, m.Material.Color)
			gl.Uniform1f(p.opacity, m.Material.Opacity)

			gl.BindBuffer(gl.ARRAY_BUFFER, buf)
			gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, 0, 0)
			gl.EnableVertexAttribArray(aVertexPosition)
			gl.DrawArrays(gl.TRIANGLES, 0, len(m.Geometry.Indices))
		}
	}

	for g, buf := range r.geometry {
		if !used[g] {
			r.deleteBuffer(buf)
			delete(r.geometry, g)
		}
	}
}

func (r *renderer) upload(data []float32) webgl.Buffer {
	gl := r.gl
	buf := gl.CreateBuffer()
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(data), gl.STATIC_DRAW)
	return buf
}

func (r *renderer) deleteBuffer(buf webgl.Buffer) {
	r.gl.JS().Call("deleteBuffer", js.Value(buf))
}

func (r *renderer) uniformMatrix(loc webgl.Location, m mat.Mat4) {
	r.gl.JS().Call("uniformMatrix4fv", js.Value(loc), false, float32Of(m[:]...))
}

func (r *renderer) uniformVec3(loc webgl.Location, v mat.Vec3) {
	r.gl.JS().Call("uniform3fv", js.Value(loc), float32Of(v[:]...))
}

func (r *renderer) releaseCloud() {
	if r.cloud == nil {
		return
	}
	r.deleteBuffer(r.cloud.positions)
	r.deleteBuffer(r.cloud.colors)
	r.cloud = nil
}

// Dispose releases GPU resources and removes the canvas from the page.
func (r *renderer) Dispose() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = js.Error{Value: js.Global().Get("Error").New("failed to dispose renderer")}
		}
	}()
	if !r.gl.IsContextLost() {
		r.releaseCloud()
		for g, buf := range r.geometry {
			r.deleteBuffer(buf)
			delete(r.geometry, g)
		}
		if ext, ok := r.gl.GetExtension("WEBGL_lose_context"); ok {
			ext.Call("loseContext")
		}
	}
	r.canvas.Call("remove")
	r.log.Debug("renderer disposed")
	return nil
}

func float32Of(v ...float32) js.Value {
	args := make([]interface{}, len(v))
	for i := range v {
		args[i] = v[i]
	}
	return js.Global().Get("Float32Array").Call("of", args...)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
