// Package viewer implements the interactive scene viewer loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/config"
	"github.com/Faultbox/procscape/internal/engine/camera"
	"github.com/Faultbox/procscape/internal/engine/debug"
	"github.com/Faultbox/procscape/internal/engine/input"
	"github.com/Faultbox/procscape/internal/engine/landmarks"
	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/engine/renderer"
	"github.com/Faultbox/procscape/internal/engine/scene"
	"github.com/Faultbox/procscape/internal/engine/window"
	"github.com/Faultbox/procscape/internal/logger"
)

const title = "procscape"

// Viewer owns the window, the GL renderer and the current scene.
type Viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scene    *scene.Scene

	screenshots *debug.ScreenshotCapture
}

// New opens the window and generates the first scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER window, since the OpenGL context must exist.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New(input.DefaultBindings())
	v.camera = camera.NewOrbitCamera(cfg.Graphics.FOV)
	v.screenshots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, title)

	if err := v.regenerate(cfg.Generation.ResolveSeed()); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

// regenerate rebuilds the whole scene and replaces the GPU meshes. Component failures are
// logged and the rest of the scene is still shown.
func (v *Viewer) regenerate(seed int64) error {
	s, err := scene.Build(v.cfg, seed)
	if s == nil {
		return fmt.Errorf("building scene: %w", err)
	}
	if err != nil {
		v.log.Warn("scene built with failures", zap.Error(err))
	}

	v.scene = s
	if err := v.upload(); err != nil {
		return err
	}
	v.camera.FitToBounds(s.Bounds())
	v.window.SetTitle(fmt.Sprintf("%s - seed %d - %s", title, seed, v.cfg.Landmarks.Mode))
	return nil
}

// upload sends the scene meshes, plus the bounds overlay if enabled, to the GPU.
func (v *Viewer) upload() error {
	buffers := v.scene.Meshes()
	if v.cfg.Graphics.ShowBounds {
		buffers = append(buffers, debug.BoundsMesh("bounds", mesh.BoundsOf(buffers), 1, debug.BoundsColor))
	}
	if err := v.renderer.Upload(buffers); err != nil {
		return fmt.Errorf("uploading scene: %w", err)
	}
	return nil
}

// screenshot saves the frame just drawn.
func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h, v.scene.Seed)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// toggleMode switches the landmark rendering between wireframe and roads.
func (v *Viewer) toggleMode() {
	if v.cfg.Landmarks.Mode == landmarks.ModeRoads {
		v.cfg.Landmarks.Mode = landmarks.ModeWireframe
	} else {
		v.cfg.Landmarks.Mode = landmarks.ModeRoads
	}
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop", zap.String("scene", v.scene.ID.String()))

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		v.input.Update()
		if w, h, ok := v.input.Resized(); ok {
			v.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
			v.renderer.Resize(v.window.DrawableSize())
		}

		capture := false
		for _, a := range v.input.Actions() {
			switch a {
			case input.ActionQuit:
				v.running = false
			case input.ActionRegenerate:
				if err := v.regenerate(time.Now().UnixNano()); err != nil {
					return err
				}
			case input.ActionToggleMode:
				v.toggleMode()
				// Same seed: only the landmark rendering changes.
				if err := v.regenerate(v.scene.Seed); err != nil {
					return err
				}
			case input.ActionToggleBounds:
				v.cfg.Graphics.ShowBounds = !v.cfg.Graphics.ShowBounds
				if err := v.upload(); err != nil {
					return err
				}
			case input.ActionScreenshot:
				capture = true
			}
		}

		v.camera.Spin(float32(dt), v.cfg.Graphics.OrbitSpeed)

		v.renderer.Begin()
		v.renderer.Draw(v.camera.ViewProj(v.renderer.Aspect()))
		v.renderer.End()
		if capture {
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
