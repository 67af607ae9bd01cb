package segue

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Background fills the screen before Draw is called.
	Background color.Color
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives captures queued with Driver.Screenshot.
	// Defaults to "screenshots".
	ScreenshotDir string
	// Draw renders the current frame. It may be nil.
	Draw func(screen *ebiten.Image, f Frame)
	// Update runs after the driver each tick. Returning an error stops the
	// loop; ebiten.Termination ends it cleanly.
	Update func(f Frame) error
}

// game implements ebiten.Game around a Driver.
type game struct {
	driver *Driver
	cfg    RunConfig
	frame  Frame
}

func (g *game) Update() error {
	g.frame = g.driver.Update()
	if g.cfg.Update != nil {
		return g.cfg.Update(g.frame)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen, g.frame)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	g.driver.flushScreenshots(screen, g.cfg.ScreenshotDir)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives d once per tick until the window closes or
// cfg.Update returns an error.
func Run(d *Driver, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = defaultScreenshotDir
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{driver: d, cfg: cfg})
}
