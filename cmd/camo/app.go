package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/camo/audio"
	"github.com/lixenwraith/camo/background"
	"github.com/lixenwraith/camo/config"
	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/core"
	"github.com/lixenwraith/camo/engine"
	"github.com/lixenwraith/camo/palette"
	"github.com/lixenwraith/camo/render"
)

// app is the terminal host: it owns the screen and drives the background
// from a single loop goroutine
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	screen   tcell.Screen
	bg       *background.Background
	renderer *render.TerminalRenderer
	sound    *audio.SoundManager
	session  uuid.UUID
	seed     uint64

	scrollRows int
	hud        bool
}

// sessionSeed folds a session id into a pattern seed
func sessionSeed(id uuid.UUID) uint64 {
	return binary.LittleEndian.Uint64(id[:8]) ^ binary.LittleEndian.Uint64(id[8:])
}

func newApp(cfg *config.Config, screen tcell.Screen, clock engine.Clock, logger *zap.Logger, extra ...background.Option) (*app, error) {
	p, err := cfg.BuildPalette()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		screen:  screen,
		session: uuid.New(),
		hud:     cfg.HUD,
	}
	a.seed = cfg.Seed
	if a.seed == 0 {
		a.seed = sessionSeed(a.session)
	}

	opts := []background.Option{
		background.WithClock(clock),
		background.WithSeed(a.seed),
		background.WithLogger(logger.Named("camo")),
		background.WithPalette(p),
		background.WithGlitchConfig(cfg.GlitchSettings(p)),
	}
	opts = append(opts, extra...)

	w, h := screen.Size()
	a.bg = background.New(
		background.Options{TargetOpacity: cfg.TargetOpacity(), StaticOnly: cfg.StaticOnly()},
		background.Environment{
			Width:         w,
			Height:        h,
			ReducedMotion: cfg.ReducedMotion || engine.ReducedMotionFromEnv(os.Getenv),
			Planner:       cfg.Planner(),
		},
		opts...,
	)

	mode := render.ParseColorMode(cfg.Color, os.Getenv)
	a.renderer = render.NewTerminalRenderer(screen, render.NewCompositor(a.bg.Base()), mode, p.Highlight())

	logger.Info("camo started",
		zap.String("session", a.session.String()),
		zap.Uint64("seed", a.seed),
		zap.String("variant", cfg.Variant),
		zap.Stringer("color", mode),
		zap.Int("width", w),
		zap.Int("height", h),
	)
	return a, nil
}

func run(parent context.Context, cfg *config.Config, flags config.Flags) error {
	logger, logFile := setupLogging(flags.Debug)
	if logFile != nil {
		defer logFile.Close()
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	fini := sync.OnceFunc(screen.Fini)
	core.SetCrashReset(fini)
	defer func() {
		core.SetCrashReset(nil)
		fini()
	}()
	screen.HideCursor()
	screen.EnableMouse()

	clock := engine.NewLoopClock(64)
	defer clock.Close()

	var extra []background.Option
	var sound *audio.SoundManager
	if cfg.Sound {
		sound = audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
			sound = nil
		} else {
			defer sound.Cleanup()
			extra = append(extra, background.WithGlitchObserver(sound.PlayGlitch))
		}
	}

	a, err := newApp(cfg, screen, clock, logger, extra...)
	if err != nil {
		return err
	}
	a.sound = sound
	defer a.bg.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	events := make(chan tcell.Event, 64)
	g.Go(core.Guard(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}))

	reloads := make(chan *config.Config, 1)
	if flags.Watch && flags.Path != "" {
		w, err := config.NewWatcher(flags.Path, logger.Named("config"))
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		} else {
			g.Go(core.Guard(func() error {
				return w.Run(ctx, func(c *config.Config) {
					select {
					case reloads <- c:
					case <-ctx.Done():
					}
				})
			}))
		}
	}

	g.Go(core.Guard(func() error {
		// PollEvent only returns once the screen is finalized
		defer fini()
		defer cancel()
		return a.loop(ctx, clock, events, reloads)
	}))

	return g.Wait()
}

// loop is the only goroutine that touches the background
func (a *app) loop(ctx context.Context, clock *engine.LoopClock, events <-chan tcell.Event, reloads <-chan *config.Config) error {
	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	a.frame(clock.Now())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		case task := <-clock.Tasks():
			task()
		case c := <-reloads:
			a.reconfigure(c)
		case <-ticker.C:
			a.frame(clock.Now())
		}
	}
}

func (a *app) frame(now time.Time) {
	a.bg.Tick(now)
	a.renderer.Draw(a.bg.Layer(), a.hudText())
}

// handleEvent returns false when the user asked to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			a.scrollBy(-1)
		case ev.Buttons()&tcell.WheelDown != 0:
			a.scrollBy(1)
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		a.screen.Sync()
		a.scrollBy(0)
		a.bg.Resize(w, h)
		a.logger.Debug("viewport resized", zap.Int("width", w), zap.Int("height", h))
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	_, h := a.screen.Size()
	page := max(h-1, 1)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.scrollBy(-1)
	case tcell.KeyDown:
		a.scrollBy(1)
	case tcell.KeyPgUp:
		a.scrollBy(-page)
	case tcell.KeyPgDn:
		a.scrollBy(page)
	case tcell.KeyHome:
		a.scrollBy(-a.scrollRows)
	case tcell.KeyEnd:
		a.scrollBy(a.maxScroll())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			a.scrollBy(-1)
		case 'j':
			a.scrollBy(1)
		case 'g':
			a.scrollBy(-a.scrollRows)
		case 'G':
			a.scrollBy(a.maxScroll())
		case 'h':
			a.hud = !a.hud
		case 'r':
			a.bg.Rebuild()
		}
	}
	return true
}

// maxScroll is the simulated page length minus one screen, in rows
func (a *app) maxScroll() int {
	_, h := a.screen.Size()
	return max(int((a.cfg.DocumentScreens-1)*float64(h)), 0)
}

// scrollBy moves the simulated page and reports progress to the background
func (a *app) scrollBy(rows int) {
	limit := a.maxScroll()
	a.scrollRows = min(max(a.scrollRows+rows, 0), limit)
	progress := 0.0
	if limit > 0 {
		progress = float64(a.scrollRows) / float64(limit)
	}
	a.bg.Scroll(progress)
}

// reconfigure applies a reloaded file; only live-safe settings change
func (a *app) reconfigure(c *config.Config) {
	p, err := c.BuildPalette()
	if err != nil {
		a.logger.Warn("reload rejected", zap.Error(err))
		return
	}
	a.cfg.Palette = c.Palette
	a.cfg.HUD = c.HUD
	a.hud = c.HUD
	if a.sound != nil {
		a.sound.SetMuted(!c.Sound)
	}
	a.applyPalette(p)
	a.logger.Info("config reloaded", zap.Int("tokens", p.Len()))
}

func (a *app) applyPalette(p *palette.Palette) {
	a.bg.Reconfigure(p)
	a.renderer = render.NewTerminalRenderer(a.screen, render.NewCompositor(p.Base()), a.renderer.Mode(), p.Highlight())
}

func (a *app) hudText() string {
	if !a.hud {
		return ""
	}
	st := a.bg.Stats()
	state := "static"
	if !st.Static {
		state = st.GlitchState.String()
	}
	return fmt.Sprintf(" camo %dx%d  opacity %.2f  offset %.3f  glitch %s p%d a%d  rebuilds %d  seed %d  %s ",
		st.Cols, st.Rows, st.Opacity, st.OffsetY, state, st.Pending, st.Active, st.Rebuilds, a.seed, a.renderer.Mode())
}
