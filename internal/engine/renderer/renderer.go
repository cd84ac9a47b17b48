// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/internal/engine/shader"
	"github.com/Faultbox/scenebox/internal/logger"
	"github.com/Faultbox/scenebox/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// Renderer draws every visible scene object as a flat-shaded unit cube.
type Renderer struct {
	config  Config
	program *shader.Program

	cubeVAO uint32
	cubeVBO uint32

	log *zap.Logger
}

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const fragmentShaderSource = `
#version 410 core

in vec3 vNormal;
out vec4 FragColor;

uniform vec3 uColor;

const vec3 lightDir = normalize(vec3(0.4, 1.0, 0.6));

void main() {
	float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
	FragColor = vec4(uColor * (0.35 + 0.65 * diffuse), 1.0);
}
`

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	var err error
	r.program, err = shader.NewProgram(vertexShaderSource, fragmentShaderSource, "uMVP", "uModel", "uColor")
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.createCube()
	r.SetSize(cfg.Width, cfg.Height)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.cubeVAO != 0 {
		gl.DeleteVertexArrays(1, &r.cubeVAO)
	}
	if r.cubeVBO != 0 {
		gl.DeleteBuffers(1, &r.cubeVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// SetSize updates the GL viewport. Non-positive sizes are ignored.
func (r *Renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render clears the frame and draws the scene through cam.
// Hidden objects are skipped together with their subtrees.
func (r *Renderer) Render(g *scene.Graph, cam *camera.Perspective) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	gl.BindVertexArray(r.cubeVAO)

	vp := cam.ViewProjection()
	for _, obj := range g.Objects() {
		r.draw(obj, vp)
	}

	gl.BindVertexArray(0)
}

func (r *Renderer) draw(obj *scene.Object, vp math.Mat4) {
	if !obj.Visible {
		return
	}

	world := obj.WorldMatrix()
	r.program.SetMat4("uMVP", vp.Mul(world))
	r.program.SetMat4("uModel", world)
	r.program.SetVec3("uColor", obj.Color)
	gl.DrawArrays(gl.TRIANGLES, 0, cubeVertexCount)

	for _, child := range obj.Children() {
		r.draw(child, vp)
	}
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// createCube uploads a unit cube centered on the origin: position + normal per vertex.
func (r *Renderer) createCube() {
	vertices := cubeVertices()

	// Create VAO (Vertex Array Object)
	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.BindVertexArray(r.cubeVAO)

	// Create VBO (Vertex Buffer Object)
	gl.GenBuffers(1, &r.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	// Unbind
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("cube created",
		zap.Uint32("vao", r.cubeVAO),
		zap.Uint32("vbo", r.cubeVBO),
	)
}
