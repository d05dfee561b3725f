package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/sense-dice/audio"
	"github.com/lixenwraith/sense-dice/config"
	"github.com/lixenwraith/sense-dice/engine"
	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/render"
	"github.com/lixenwraith/sense-dice/sense"
	"github.com/lixenwraith/sense-dice/sensory"
	"github.com/lixenwraith/sense-dice/telemetry"
	"github.com/lixenwraith/sense-dice/vmath"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func seededConfig(seed uint64) *config.Config {
	cfg := config.Default()
	cfg.Dice.Seed = seed
	cfg.Audio.Muted = true
	return cfg
}

func offlineSession(t *testing.T, cfg *config.Config, hud *render.TerminalRenderer) *session {
	t.Helper()
	sound := audio.NewSoundManager()
	sound.InitializeOffline()
	t.Cleanup(sound.Cleanup)
	return newSession(cfg, discard(), engine.NewPausableClock(), sound, hud)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sense-dice version dev")
	assert.Contains(t, out, "OS/Arch:")
}

func TestConfigCommandFlags(t *testing.T) {
	out, err := runCmd(t, "config", "--seed", "9", "--mute", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "seed: 9")
	assert.Contains(t, out, "muted: true")
	assert.Contains(t, out, "level: debug")
}

func TestConfigCommandEnvAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dice.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dice]\nflip_interval = \"100ms\"\n"), 0o644))
	t.Setenv("SENSE_DICE_DICE_ROLL_DURATION", "3s")

	out, err := runCmd(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "roll_duration: 3s")
	assert.Contains(t, out, "flip_interval: 100ms")
}

func TestConfigCommandEnvFile(t *testing.T) {
	const key = "SENSE_DICE_DICE_CUE_VOLUME"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=0.25\n"), 0o644))

	out, err := runCmd(t, "config", "--env-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "cue_volume: 0.25")
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	_, err := runCmd(t, "config", "--log-level", "loud")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestSimulateCommand(t *testing.T) {
	out, err := runCmd(t, "simulate", "--duration", "25s", "--pickup-every", "0", "--agents", "1", "-q", "--seed", "5", "--mute")
	require.NoError(t, err)
	assert.Contains(t, out, "sense-dice simulation")
	assert.Contains(t, out, "bad rolls")
	assert.Contains(t, out, "hostiles")
}

func TestSimulateBadDieOnly(t *testing.T) {
	sess := offlineSession(t, seededConfig(5), nil)

	report, err := simulate(t.Context(), sess, simOptions{Duration: 25 * time.Second, Agents: 2})
	require.NoError(t, err)

	assert.Equal(t, 25*time.Second, report.Elapsed)
	assert.Equal(t, uint64(500), report.Ticks)
	assert.Equal(t, 0, report.Rolls(sense.GoodDie))
	assert.Equal(t, 2, report.Rolls(sense.BadDie))
	require.Len(t, report.Commits, 4)
	assert.Equal(t, simCommit{Die: sense.BadDie, Outcome: report.Commits[0].Outcome, Silent: true}, report.Commits[0])
	assert.Equal(t, simCommit{Die: sense.GoodDie, Outcome: report.Commits[1].Outcome, Silent: true}, report.Commits[1])
	assert.Equal(t, report.Commits[0].Outcome.Bad, report.Commits[1].Outcome.Bad)
	assert.Equal(t, 12*time.Second, report.Commits[2].At)
	assert.Equal(t, 22*time.Second, report.Commits[3].At)
	assert.False(t, report.Commits[3].Silent)
	assert.Equal(t, 2, report.AgentsAlive)
	assert.Equal(t, sess.dice.Outcome(), report.Final)

	for _, sn := range sense.Senses {
		var sum time.Duration
		for _, d := range report.StateTime[sn] {
			sum += d
		}
		assert.Equal(t, report.Elapsed, sum, sn.String())
	}
}

func TestSimulateDropsPickupDuringBadRoll(t *testing.T) {
	sess := offlineSession(t, seededConfig(11), nil)

	// Pickups at 7s, 14s and 21s; the bad die rolls 10s-12s and 20s-22s
	report, err := simulate(t.Context(), sess, simOptions{Duration: 25 * time.Second, PickupEvery: 7 * time.Second})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Rolls(sense.GoodDie))
	assert.Equal(t, 2, report.Rolls(sense.BadDie))
	assert.Equal(t, int64(1), report.Dropped)

	out := renderReport(report)
	assert.Contains(t, out, "good rolls")
	assert.Contains(t, out, "rolled")
	assert.Equal(t, 4, strings.Count(out, "rolled"))
	assert.Equal(t, 2, strings.Count(out, " silent "), "startup commits are listed")
}

func TestSimulateSpawnsInCurrentBehavior(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 4, 5, 6, 7, 8} {
		sess := offlineSession(t, seededConfig(seed), nil)

		_, err := simulate(t.Context(), sess, simOptions{Duration: time.Second, Agents: 3})
		require.NoError(t, err)

		want := sensory.BehaviorFor(sess.dice.Vector().Get(sense.Speech))
		require.Equal(t, 3, sess.world.Registry.Len())
		for _, h := range sess.world.Registry.Hostiles() {
			assert.Equal(t, want, h.Behavior(), "seed %d hostile %d", seed, h.ID())
		}
	}
}

func TestSimulateCancelled(t *testing.T) {
	sess := offlineSession(t, seededConfig(3), nil)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := simulate(ctx, sess, simOptions{Duration: time.Second})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionDrivesRenderer(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 20)
	hud := render.NewTerminalRenderer(screen)

	cfg := seededConfig(21)
	sess := offlineSession(t, cfg, hud)
	sess.start()

	good, bad := hud.Faces()
	assert.Equal(t, sess.dice.Outcome(), sense.Outcome{Good: good, Bad: bad})
	assert.Equal(t, cfg.Tuning().Vision[sess.dice.Vector().Get(sense.Sight)], hud.Cone())

	sess.queue.Push(event.Event{Type: event.EventSpawnAgent, Payload: spawnPayload(vmath.Vec2{}, 0)})
	sess.queue.PushType(event.EventPickup)
	sess.loop.Step(cfg.Loop.TickInterval)

	f := sess.frame()
	require.Len(t, f.Agents, 1)
	assert.True(t, f.Agents[0].Frozen)
	assert.True(t, f.Rolling)
	assert.Equal(t, sense.GoodDie, f.RollDie)
	assert.False(t, f.Player.Enabled)
	assert.NotEmpty(t, f.Metrics)

	var header strings.Builder
	for x := range 80 {
		r, _, _, _ := screen.GetContent(x, 0)
		header.WriteRune(r)
	}
	assert.Contains(t, header.String(), "rolling good")
}

func TestBuildHub(t *testing.T) {
	a := &app{cfg: seededConfig(1), logger: discard(), telemetry: telemetry.Config{}}

	var sess *session
	hub, err := buildHub(a, engine.NewPausableClock(), nil, &sess)
	require.NoError(t, err)
	assert.Equal(t, []string{"audio", "game", "telemetry"}, hub.Names())

	require.NoError(t, hub.StartAll())
	t.Cleanup(hub.StopAll)
	require.NotNil(t, sess)
	assert.False(t, sess.sound.IsInitialized(), "muted audio never opens the device")
	assert.Equal(t, sensory.PhaseIdle, sess.dice.Phase())
}

func TestTranslateKey(t *testing.T) {
	origin := vmath.Vec2{}
	tests := []struct {
		name   string
		key    *tcell.EventKey
		paused bool
		want   event.EventType
		quit   bool
		none   bool
	}{
		{"quit rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false, 0, true, false},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false, 0, true, false},
		{"pickup", tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), false, event.EventPickup, false, false},
		{"enter pickup", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false, event.EventPickup, false, false},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), false, event.EventPause, false, false},
		{"resume", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), true, event.EventResume, false, false},
		{"spawn", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), false, event.EventSpawnAgent, false, false},
		{"destroy", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false, event.EventDestroyAgent, false, false},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), false, event.EventMove, false, false},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), false, 0, false, true},
		{"unbound key", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), false, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := translateKey(tt.key, tt.paused, origin, 0)
			assert.Equal(t, tt.quit, act.quit)
			if tt.quit || tt.none {
				assert.False(t, act.ok)
				return
			}
			require.True(t, act.ok)
			assert.Equal(t, tt.want, act.ev.Type)
		})
	}

	act := translateKey(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), false, origin, 0)
	assert.Equal(t, &event.MovePayload{X: 0, Y: 1}, act.ev.Payload)
}

func TestSpawnPayload(t *testing.T) {
	player := vmath.Vec2{X: 2, Y: -1}
	for n := range 4 {
		p := spawnPayload(player, n)
		pos := vmath.Vec2{X: p.X, Y: p.Y}
		assert.InDelta(t, spawnDistance, vmath.V2Dist(player, pos), 1e-9)
		require.Len(t, p.Waypoints, 2)
		a := vmath.Vec2{X: p.Waypoints[0][0], Y: p.Waypoints[0][1]}
		b := vmath.Vec2{X: p.Waypoints[1][0], Y: p.Waypoints[1][1]}
		assert.InDelta(t, 2*patrolHalfLength, vmath.V2Dist(a, b), 1e-9)
	}
	assert.NotEqual(t, spawnPayload(player, 0).X, spawnPayload(player, 1).X)
}

func TestSetupLogging(t *testing.T) {
	logger, closeLog, err := setupLogging(config.LogConfig{Level: "info"}, nil)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	require.NoError(t, closeLog())

	var stderr bytes.Buffer
	logger, _, err = setupLogging(config.LogConfig{Level: "warn", File: "-"}, &stderr)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "shown")

	path := filepath.Join(t.TempDir(), "logs", "sense-dice.log")
	logger, closeLog, err = setupLogging(config.LogConfig{Level: "debug", File: path}, nil)
	require.NoError(t, err)
	logger.Debug("dice committed", "die", "good")
	require.NoError(t, closeLog())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"dice committed"`)

	_, _, err = setupLogging(config.LogConfig{Level: "loud"}, nil)
	assert.Error(t, err)
}
