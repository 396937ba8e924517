// Package renderer uploads generated mesh buffers to OpenGL and draws them.
package renderer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the shader program and the GPU copies of the current meshes.
type Renderer struct {
	config Config
	log    *zap.Logger

	program     uint32
	locViewProj int32
	locModel    int32

	model  math.Mat4
	meshes []*gpuMesh
}

// gpuMesh is one uploaded mesh.Buffer.
type gpuMesh struct {
	name   string
	vao    uint32
	vbo    uint32
	ebo    uint32
	ranges []mesh.DrawRange
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		model:  math.ZUpToYUp(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.55, 0.65, 0.75, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := compileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program
	r.locViewProj = uniform(program, "uViewProj")
	r.locModel = uniform(program, "uModel")

	return r, nil
}

// Upload replaces the current meshes with buffers. Empty buffers are skipped.
func (r *Renderer) Upload(buffers []*mesh.Buffer) error {
	start := time.Now()
	r.release()

	var vertices, indices int
	for _, b := range buffers {
		if b.VertexCount() == 0 || len(b.Primitives) == 0 {
			continue
		}
		if err := b.Validate(); err != nil {
			r.release()
			return fmt.Errorf("uploading %s: %w", b.Name, err)
		}
		m := upload(b)
		r.meshes = append(r.meshes, m)
		vertices += b.VertexCount()
		for _, rg := range m.ranges {
			indices += rg.Count
		}
	}

	r.log.Debug("meshes uploaded",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("vertices", vertices),
		zap.Int("indices", indices),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func upload(b *mesh.Buffer) *gpuMesh {
	vertices := b.Interleave()
	indices, ranges := b.Flatten()
	m := &gpuMesh{name: b.Name, ranges: ranges}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(mesh.FloatsPerVertex * 4)
	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Color (location = 1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return m
}

// primitiveMode maps a topology to its GL draw mode.
func primitiveMode(t mesh.Topology) uint32 {
	if t == mesh.LineStrip {
		return gl.LINE_STRIP
	}
	return gl.TRIANGLE_STRIP
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every uploaded mesh with the given view-projection matrix.
func (r *Renderer) Draw(viewProj math.Mat4) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, viewProj.Ptr())
	gl.UniformMatrix4fv(r.locModel, 1, false, r.model.Ptr())

	for _, m := range r.meshes {
		gl.BindVertexArray(m.vao)
		for _, rg := range m.ranges {
			gl.DrawElementsWithOffset(primitiveMode(rg.Topology), int32(rg.Count), gl.UNSIGNED_INT, uintptr(rg.Offset*4))
		}
	}
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// MeshCount returns the number of uploaded meshes.
func (r *Renderer) MeshCount() int { return len(r.meshes) }

func (r *Renderer) release() {
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	r.meshes = r.meshes[:0]
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.release()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
