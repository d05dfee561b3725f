package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/sense-dice/audio"
	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/engine"
	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/render"
	"github.com/lixenwraith/sense-dice/service"
	"github.com/lixenwraith/sense-dice/telemetry"
)

var (
	liveScreenMu sync.Mutex
	liveScreen   tcell.Screen
)

// restoreTerminal finalizes the active screen, if any
func restoreTerminal() {
	liveScreenMu.Lock()
	defer liveScreenMu.Unlock()
	if liveScreen != nil {
		liveScreen.Fini()
		liveScreen = nil
	}
}

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Long: `Arrows or hjkl move, e rolls the good die, n spawns a hostile,
x removes the newest one, p pauses, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init screen: %w", err)
			}
			liveScreenMu.Lock()
			liveScreen = screen
			liveScreenMu.Unlock()
			core.SetCrashCleanup(restoreTerminal)
			defer core.SetCrashCleanup(nil)
			defer restoreTerminal()

			return runPlay(cmd.Context(), a, screen)
		},
	}
}

// buildHub registers the audio and telemetry services and a game service
// that wires the session once both are started
func buildHub(a *app, clock *engine.PausableClock, hud *render.TerminalRenderer, out **session) (*service.Hub, error) {
	hub := service.NewHub(a.logger.With("component", "hub"))
	audioSvc := audio.NewService(a.logger.With("component", "audio"))
	game := &service.Func{
		ServiceName: "game",
		Requires:    []string{"audio", "telemetry"},
		OnStart: func() error {
			sess := newSession(a.cfg, a.logger, clock, audioSvc.Manager(), hud)
			sess.start()
			*out = sess
			return nil
		},
	}

	for _, svc := range []service.Service{
		audioSvc,
		telemetry.NewService(a.telemetry, a.logger.With("component", "telemetry")),
		game,
	} {
		if err := hub.Register(svc); err != nil {
			return nil, err
		}
	}
	if err := hub.InitAll(map[string][]any{"audio": {a.cfg.Audio.Muted}}); err != nil {
		return nil, err
	}
	return hub, nil
}

func runPlay(ctx context.Context, a *app, screen tcell.Screen) error {
	screen.HideCursor()
	clock := engine.NewPausableClock()
	hud := render.NewTerminalRenderer(screen)

	var sess *session
	hub, err := buildHub(a, clock, hud, &sess)
	if err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	ticker := time.NewTicker(a.cfg.Loop.TickInterval)
	defer ticker.Stop()
	spawned := 0

	a.logger.Info("play started", "tick", a.cfg.Loop.TickInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				act := translateKey(ev, clock.IsPaused(), sess.world.Player.Position(), spawned)
				if act.quit {
					a.logger.Info("play ended", "ticks", sess.loop.TickCount())
					return nil
				}
				if act.ok {
					sess.queue.Push(act.ev)
					if act.ev.Type == event.EventSpawnAgent {
						spawned++
					}
				}
			}
		case <-ticker.C:
			sess.loop.Tick()
		}
	}
}
