package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/sense-dice/audio"
	"github.com/lixenwraith/sense-dice/engine"
	"github.com/lixenwraith/sense-dice/event"
	"github.com/lixenwraith/sense-dice/parameter"
	"github.com/lixenwraith/sense-dice/sense"
	"github.com/lixenwraith/sense-dice/sensory"
	"github.com/lixenwraith/sense-dice/vmath"
)

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1).
				MarginBottom(1)

	reportBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 2)

	reportLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999999"))
)

// simOptions scripts a headless run
type simOptions struct {
	Duration    time.Duration // Game time to simulate
	PickupEvery time.Duration // Zero disables scripted pickups
	Agents      int
	Realtime    bool
	Progress    io.Writer // Nil disables the progress bar
}

// simCommit is one committed roll seen by the notification channel
type simCommit struct {
	At      time.Duration
	Die     sense.Die
	Outcome sense.Outcome
	Silent  bool
}

// simReport summarizes a headless run
type simReport struct {
	Elapsed     time.Duration
	Ticks       uint64
	Commits     []simCommit
	Dropped     int64
	Final       sense.Outcome
	Vector      sense.Vector
	StateTime   [sense.Count][3]time.Duration
	PeakLevel   float64
	SpeakLoop   bool
	AgentsAlive int
}

// Rolls counts animated commits of die
func (r simReport) Rolls(die sense.Die) int {
	n := 0
	for _, c := range r.Commits {
		if c.Die == die && !c.Silent {
			n++
		}
	}
	return n
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := simOptions{}
	var quiet bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the dice headless and print a summary",
		Long: `Steps the game loop at the configured tick with scripted pickups and
hostiles, renders audio offline, and reports every commit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !quiet {
				opts.Progress = cmd.ErrOrStderr()
			}

			sound := audio.NewSoundManager()
			sound.InitializeOffline()
			defer sound.Cleanup()

			sess := newSession(a.cfg, a.logger, engine.NewPausableClock(), sound, nil)
			report, err := simulate(cmd.Context(), sess, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
			return err
		},
	}

	f := cmd.Flags()
	f.DurationVar(&opts.Duration, "duration", time.Minute, "Game time to simulate")
	f.DurationVar(&opts.PickupEvery, "pickup-every", 7*time.Second, "Interval between scripted pickups, 0 disables")
	f.IntVar(&opts.Agents, "agents", 3, "Hostiles spawned at start")
	f.BoolVar(&opts.Realtime, "realtime", false, "Pace ticks at wall-clock speed")
	f.BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")
	return cmd
}

// simulate starts the dice on sess, then steps it with a fixed delta until
// opts.Duration of game time
func simulate(ctx context.Context, sess *session, opts simOptions) (simReport, error) {
	dt := sess.cfg.Loop.TickInterval
	total := int64(opts.Duration / dt)

	var report simReport
	sub := sess.dice.Subscribe(func(dc sensory.DiceChanged) {
		report.Commits = append(report.Commits, simCommit{
			At:      sess.dice.Now(),
			Die:     dc.Die,
			Outcome: sense.Outcome{Good: dc.Good, Bad: dc.Bad},
			Silent:  dc.Silent,
		})
	})
	defer sess.dice.Unsubscribe(sub)
	sess.start()

	for i := range opts.Agents {
		sess.queue.Push(event.Event{
			Type:    event.EventSpawnAgent,
			Payload: spawnPayload(vmath.Vec2{}, i),
		})
	}

	bar := progressbar.DefaultSilent(total, "simulating")
	if opts.Progress != nil {
		bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	var ticker *time.Ticker
	if opts.Realtime {
		ticker = time.NewTicker(dt)
		defer ticker.Stop()
	}

	buf := make([][2]float64, int(math.Ceil(float64(parameter.AudioSampleRate)*dt.Seconds())))
	nextPickup := opts.PickupEvery

	for step := int64(0); step < total; step++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-ticker.C:
			}
		}

		if opts.PickupEvery > 0 && sess.dice.Now() >= nextPickup {
			sess.queue.PushType(event.EventPickup)
			nextPickup += opts.PickupEvery
		}

		sess.loop.Step(dt)
		report.Elapsed += dt

		v := sess.dice.Vector()
		for _, sn := range sense.Senses {
			report.StateTime[sn][v.Get(sn)] += dt
		}

		n := sess.sound.Render(buf)
		for _, s := range buf[:n] {
			report.PeakLevel = math.Max(report.PeakLevel, math.Max(math.Abs(s[0]), math.Abs(s[1])))
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	report.Ticks = sess.loop.TickCount()
	report.Dropped = sess.reg.Counters.Get("sensory.rolls.dropped").Load()
	report.Final = sess.dice.Outcome()
	report.Vector = sess.dice.Vector()
	report.SpeakLoop = sess.speakLoop()
	report.AgentsAlive = sess.world.Registry.Len()
	return report, nil
}

// renderReport formats r for the terminal
func renderReport(r simReport) string {
	label := func(s string) string { return reportLabelStyle.Render(fmt.Sprintf("%-14s", s)) }

	summary := []string{
		label("game time") + r.Elapsed.String(),
		label("ticks") + fmt.Sprint(r.Ticks),
		label("good rolls") + fmt.Sprint(r.Rolls(sense.GoodDie)),
		label("bad rolls") + fmt.Sprint(r.Rolls(sense.BadDie)),
		label("dropped") + fmt.Sprint(r.Dropped),
		label("final dice") + fmt.Sprintf("good=%s bad=%s", r.Final.Good, r.Final.Bad),
		label("hostiles") + fmt.Sprint(r.AgentsAlive),
		label("speak loop") + fmt.Sprint(r.SpeakLoop),
		label("peak level") + fmt.Sprintf("%.3f", r.PeakLevel),
	}

	states := []string{label("") + fmt.Sprintf("%-10s%-10s%-10s", sense.Negative, sense.Neutral, sense.Positive)}
	for _, sn := range sense.Senses {
		row := label(sn.String())
		for st := range 3 {
			row += fmt.Sprintf("%-10s", share(r.StateTime[sn][st], r.Elapsed))
		}
		states = append(states, row)
	}

	commits := make([]string, 0, len(r.Commits))
	for _, c := range r.Commits {
		kind := "rolled"
		if c.Silent {
			kind = "silent"
		}
		commits = append(commits, fmt.Sprintf("%8s  %-4s %s  good=%-8s bad=%s",
			c.At.Truncate(time.Millisecond), c.Die, kind, c.Outcome.Good, c.Outcome.Bad))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		reportTitleStyle.Render("sense-dice simulation"),
		reportBoxStyle.Render(strings.Join(summary, "\n")),
		reportBoxStyle.Render(strings.Join(states, "\n")),
		reportBoxStyle.Render(strings.Join(commits, "\n")),
	)
}

func share(d, total time.Duration) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(d)/float64(total))
}
