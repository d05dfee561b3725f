package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sense-dice/core"
	"github.com/lixenwraith/sense-dice/sense"
)

var (
	RgbBackground  = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbStatusBar   = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)       // Dark text for badges
	RgbMetricsText = tcell.NewRGBColor(120, 120, 140) // Dim gray
	RgbPaused      = tcell.NewRGBColor(255, 165, 0)   // Orange

	RgbGoodDie = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbBadDie  = tcell.NewRGBColor(200, 50, 50)   // Red
	RgbRolling = tcell.NewRGBColor(255, 255, 0)   // Bright yellow

	RgbPlayer       = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPlayerFrozen = tcell.NewRGBColor(255, 255, 255) // White while spinning
	RgbAgentPatrol  = tcell.NewRGBColor(180, 180, 180) // Gray
	RgbAgentChase   = tcell.NewRGBColor(255, 80, 80)   // Red
	RgbAgentRepel   = tcell.NewRGBColor(100, 150, 255) // Blue
	RgbAgentFrozen  = tcell.NewRGBColor(0, 200, 200)   // Cyan

	RgbConeLight = RGB{255, 230, 160} // Warm light
)

// RGB stores explicit 8-bit color channels for blending
type RGB struct {
	R, G, B uint8
}

var rgbBackground = RGB{26, 27, 38}

// Blend mixes src over c by alpha in [0,1]
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*alpha)
	}
	return RGB{mix(c.R, src.R), mix(c.G, src.G), mix(c.B, src.B)}
}

// Tcell converts to a tcell color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// StateColor returns the badge color of an effective state
func StateColor(st sense.State) tcell.Color {
	switch st {
	case sense.Positive:
		return RgbGoodDie
	case sense.Negative:
		return RgbBadDie
	default:
		return RgbStatusBar
	}
}

// DieColor returns the badge color of a die
func DieColor(d sense.Die) tcell.Color {
	if d == sense.GoodDie {
		return RgbGoodDie
	}
	return RgbBadDie
}

// AgentColor returns the glyph color for an agent's behavior
func AgentColor(b core.Behavior, frozen bool) tcell.Color {
	if frozen {
		return RgbAgentFrozen
	}
	switch b {
	case core.BehaviorChase:
		return RgbAgentChase
	case core.BehaviorRepel:
		return RgbAgentRepel
	default:
		return RgbAgentPatrol
	}
}
