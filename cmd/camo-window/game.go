package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/lixenwraith/camo/audio"
	"github.com/lixenwraith/camo/background"
	"github.com/lixenwraith/camo/config"
	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/engine"
	"github.com/lixenwraith/camo/grid"
	"github.com/lixenwraith/camo/render"
)

// scrollStep is the wheel notch in pixels of simulated page
const scrollStep = 60

// Game drives the background from ebiten's update goroutine
type Game struct {
	cfg    *config.Config
	logger *zap.Logger
	clock  *engine.LoopClock
	bg     *background.Background
	comp   render.Compositor
	sound  *audio.SoundManager
	seed   uint64

	w, h   int
	pixels []byte
	scroll float64
	hud    bool
}

func newGame(cfg *config.Config, w, h int, logger *zap.Logger) (*Game, error) {
	p, err := cfg.BuildPalette()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		logger: logger,
		clock:  engine.NewLoopClock(64),
		w:      w,
		h:      h,
		hud:    cfg.HUD,
	}
	g.seed = cfg.Seed
	if g.seed == 0 {
		id := uuid.New()
		g.seed = binary.LittleEndian.Uint64(id[:8]) ^ binary.LittleEndian.Uint64(id[8:])
	}

	opts := []background.Option{
		background.WithClock(g.clock),
		background.WithSeed(g.seed),
		background.WithLogger(logger.Named("camo")),
		background.WithPalette(p),
		background.WithGlitchConfig(cfg.GlitchSettings(p)),
	}
	if cfg.Sound {
		g.sound = audio.NewSoundManager()
		if err := g.sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
			g.sound = nil
		} else {
			opts = append(opts, background.WithGlitchObserver(g.sound.PlayGlitch))
		}
	}

	g.bg = background.New(
		background.Options{TargetOpacity: cfg.TargetOpacity(), StaticOnly: cfg.StaticOnly()},
		background.Environment{
			Width:         w,
			Height:        h,
			ReducedMotion: cfg.ReducedMotion || engine.ReducedMotionFromEnv(os.Getenv),
			Planner:       grid.WindowPlanner(),
		},
		opts...,
	)

	g.comp = render.NewCompositor(g.bg.Base())
	// 28px cells with a 2px gap
	g.comp.Gap = 2.0 / constants.WindowPitch
	g.pixels = make([]byte, w*h*4)
	return g, nil
}

// Update runs timer callbacks and input on the game goroutine, then advances the drivers
func (g *Game) Update() error {
	g.clock.Drain()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.bg.Rebuild()
	}

	_, dy := ebiten.Wheel()
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		dy -= 0.25
	case ebiten.IsKeyPressed(ebiten.KeyK) || ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		dy += 0.25
	}
	if dy != 0 {
		g.scrollBy(-dy * scrollStep)
	}

	g.bg.Tick(g.clock.Now())
	return nil
}

func (g *Game) scrollBy(px float64) {
	limit := (g.cfg.DocumentScreens - 1) * float64(g.h)
	g.scroll = min(max(g.scroll+px, 0), max(limit, 0))
	progress := 0.0
	if limit > 0 {
		progress = g.scroll / limit
	}
	g.bg.Scroll(progress)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.comp.Fill(g.pixels, g.bg.Layer(), g.w, g.h)
	screen.WritePixels(g.pixels)

	if g.hud {
		st := g.bg.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("camo %dx%d narrow=%v\nopacity %.2f offset %.3f\nglitch %s pending %d active %d\nseed %d fps %.1f",
			st.Cols, st.Rows, st.Narrow, st.Opacity, st.OffsetY, st.GlitchState, st.Pending, st.Active, g.seed, ebiten.ActualFPS()))
	}
}

// Layout follows the window size; a change is reported as a resize
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != g.w || h != g.h {
		g.w, g.h = w, h
		g.pixels = make([]byte, w*h*4)
		g.scrollBy(0)
		g.bg.Resize(w, h)
	}
	return w, h
}

func (g *Game) Close() {
	g.bg.Close()
	g.clock.Close()
	if g.sound != nil {
		g.sound.Cleanup()
	}
}

var _ ebiten.Game = (*Game)(nil)
