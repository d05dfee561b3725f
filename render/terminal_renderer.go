package render

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/sense"
	"github.com/lixenwraith/sense-dice/sensory"
	"github.com/lixenwraith/sense-dice/status"
	"github.com/lixenwraith/sense-dice/vmath"
)

const (
	// cellsPerUnit is the horizontal cell count of one world unit, rows are one unit
	cellsPerUnit = 2
	headerRows   = 2
	footerRows   = 1
)

// PlayerView is the render state of the player
type PlayerView struct {
	Pos      vmath.Vec2
	Facing   float64 // Degrees
	Rotation float64 // Degrees, spin offset
	Enabled  bool
}

// AgentView is the render state of one hostile
type AgentView struct {
	Pos      vmath.Vec2
	Behavior core.Behavior
	Frozen   bool
}

// Frame is everything drawn in one pass besides cone and faces
type Frame struct {
	Vector       sense.Vector
	GainDB       float64
	Rolling      bool
	RollDie      sense.Die
	RollProgress float64
	NextBadRoll  time.Duration
	Paused       bool
	Player       PlayerView
	Agents       []AgentView
	Metrics      []status.Metric
}

// TerminalRenderer draws the dice HUD and a player-centered world view
// Implements sensory.VisionController and sensory.FaceDisplay
type TerminalRenderer struct {
	screen tcell.Screen

	mu   sync.Mutex
	cone sensory.Cone
	good sense.Sense
	bad  sense.Sense
}

// NewTerminalRenderer creates a renderer over an initialized screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		cone:   sensory.DefaultTuning().Vision[sense.Neutral],
	}
}

// SetCone implements sensory.VisionController
func (r *TerminalRenderer) SetCone(cone sensory.Cone) {
	r.mu.Lock()
	r.cone = cone
	r.mu.Unlock()
}

// ShowFaces implements sensory.FaceDisplay
func (r *TerminalRenderer) ShowFaces(good, bad sense.Sense) {
	r.mu.Lock()
	r.good, r.bad = good, bad
	r.mu.Unlock()
}

// Cone returns the last cone received
func (r *TerminalRenderer) Cone() sensory.Cone {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cone
}

// Faces returns the faces currently shown
func (r *TerminalRenderer) Faces() (good, bad sense.Sense) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.good, r.bad
}

// RenderFrame renders the entire frame
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.mu.Lock()
	cone, good, bad := r.cone, r.good, r.bad
	r.mu.Unlock()

	defaultStyle := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusBar)
	r.screen.Fill(' ', defaultStyle)
	width, height := r.screen.Size()

	r.drawDice(f, good, bad, width, defaultStyle)
	r.drawVector(f, width, defaultStyle)
	r.drawWorld(f, cone, width, height, defaultStyle)
	r.drawMetrics(f.Metrics, width, height, defaultStyle)

	r.screen.Show()
}

// drawDice draws both face badges and the roll indicator on row 0
func (r *TerminalRenderer) drawDice(f Frame, good, bad sense.Sense, width int, style tcell.Style) {
	x := 0
	x = r.drawBadge(x, 0, " GOOD "+strings.ToUpper(good.String())+" ", style.Background(RgbGoodDie).Foreground(RgbStatusText))
	x++
	x = r.drawBadge(x, 0, " BAD "+strings.ToUpper(bad.String())+" ", style.Background(RgbBadDie).Foreground(RgbStatusText))
	x++

	if f.Rolling {
		bar := progressBar(f.RollProgress, 10)
		x = r.drawText(x, 0, fmt.Sprintf("rolling %s %s", f.RollDie, bar), width, style.Foreground(RgbRolling))
		x++
	}
	if f.Paused {
		r.drawText(x, 0, "PAUSED", width, style.Foreground(RgbPaused).Bold(true))
	}
}

// drawVector draws the effective states, gain and bad die timer on row 1
func (r *TerminalRenderer) drawVector(f Frame, width int, style tcell.Style) {
	x := 0
	for _, s := range sense.Senses {
		st := f.Vector.Get(s)
		x = r.drawText(x, 1, fmt.Sprintf("%s:%s", s, stateMark(st)), width, style.Foreground(StateColor(st)))
		x++
	}

	gain := fmt.Sprintf("gain %+.1fdB", f.GainDB)
	if f.GainDB <= -80 {
		gain = "gain silent"
	}
	x = r.drawText(x+1, 1, gain, width, style)
	r.drawText(x+2, 1, fmt.Sprintf("bad die in %.1fs", f.NextBadRoll.Seconds()), width, style.Foreground(RgbMetricsText))
}

// drawWorld draws cone light, hostiles and the player centered in the viewport
func (r *TerminalRenderer) drawWorld(f Frame, cone sensory.Cone, width, height int, style tcell.Style) {
	top := headerRows
	rows := height - headerRows - footerRows
	if rows <= 0 || width <= 0 {
		return
	}
	cx, cy := width/2, top+rows/2
	heading := f.Player.Facing + f.Player.Rotation

	for y := top; y < top+rows; y++ {
		for x := 0; x < width; x++ {
			off := vmath.Vec2{
				X: float64(x-cx) / cellsPerUnit,
				Y: float64(cy - y),
			}
			if a := ConeLight(cone, heading, off); a > 0 {
				bg := rgbBackground.Blend(RgbConeLight, a*0.35)
				r.screen.SetContent(x, y, ' ', nil, style.Background(bg.Tcell()))
			}
		}
	}

	toCell := func(p vmath.Vec2) (int, int, bool) {
		d := vmath.V2Sub(p, f.Player.Pos)
		x := cx + int(math.Round(d.X*cellsPerUnit))
		y := cy - int(math.Round(d.Y))
		return x, y, x >= 0 && x < width && y >= top && y < top+rows
	}

	for _, a := range f.Agents {
		x, y, ok := toCell(a.Pos)
		if !ok {
			continue
		}
		_, _, bg, _ := r.screen.GetContent(x, y)
		_, bgColor, _ := bg.Decompose()
		r.screen.SetContent(x, y, agentGlyph(a), nil, style.Background(bgColor).Foreground(AgentColor(a.Behavior, a.Frozen)).Bold(true))
	}

	fg := RgbPlayer
	if !f.Player.Enabled {
		fg = RgbPlayerFrozen
	}
	_, _, bg, _ := r.screen.GetContent(cx, cy)
	_, bgColor, _ := bg.Decompose()
	r.screen.SetContent(cx, cy, HeadingGlyph(heading), nil, style.Background(bgColor).Foreground(fg).Bold(true))
}

// drawMetrics draws the status snapshot on the last row
func (r *TerminalRenderer) drawMetrics(metrics []status.Metric, width, height int, style tcell.Style) {
	if len(metrics) == 0 || height <= headerRows {
		return
	}
	parts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		parts = append(parts, m.Key+"="+m.Value)
	}
	r.drawText(0, height-1, strings.Join(parts, " "), width, style.Foreground(RgbMetricsText))
}

func (r *TerminalRenderer) drawBadge(x, y int, text string, style tcell.Style) int {
	w, _ := r.screen.Size()
	return r.drawText(x, y, text, w, style)
}

// drawText writes text clipped at width and returns the next free column
func (r *TerminalRenderer) drawText(x, y int, text string, width int, style tcell.Style) int {
	for _, ch := range text {
		if x >= width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// ConeLight returns the light level at offset from a viewer facing heading
// Full intensity inside the inner angle, half out to the outer angle, zero beyond
func ConeLight(cone sensory.Cone, heading float64, off vmath.Vec2) float64 {
	dist := vmath.V2Mag(off)
	if dist == 0 {
		return cone.Intensity
	}
	if dist > cone.Radius {
		return 0
	}
	delta := math.Abs(angleDiff(vmath.V2Heading(off), heading))
	switch {
	case delta <= cone.InnerAngle/2:
		return cone.Intensity
	case delta <= cone.OuterAngle/2:
		return cone.Intensity / 2
	default:
		return 0
	}
}

// angleDiff returns a-b wrapped into (-180, 180]
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

var headingGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// HeadingGlyph returns the arrow nearest to heading degrees
func HeadingGlyph(heading float64) rune {
	h := math.Mod(heading, 360)
	if h < 0 {
		h += 360
	}
	return headingGlyphs[int(math.Round(h/45))%8]
}

func agentGlyph(a AgentView) rune {
	if a.Frozen {
		return '*'
	}
	switch a.Behavior {
	case core.BehaviorChase:
		return 'X'
	case core.BehaviorRepel:
		return '~'
	default:
		return 'o'
	}
}

func stateMark(st sense.State) string {
	switch st {
	case sense.Positive:
		return "+"
	case sense.Negative:
		return "-"
	default:
		return "0"
	}
}

func progressBar(p float64, width int) string {
	p = math.Max(0, math.Min(1, p))
	filled := int(p * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
