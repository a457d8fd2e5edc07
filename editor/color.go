package editor

import (
	"github.com/milk9111/pixelsmash/levels"
	"github.com/milk9111/pixelsmash/palette"
)

const suggestLighten = 0.4

// TargetColor is the brush color the picker currently edits.
func (s *Session) TargetColor() levels.Color {
	if s.Target == TargetSecondary {
		return s.Secondary
	}
	return s.Primary
}

// SetColorTarget switches the picker to primary or secondary and loads that
// color into the HSV state.
func (s *Session) SetColorTarget(t ColorTarget) {
	s.Target = t
	s.syncHSV()
}

// SetHue sets the picker hue (0..1) and recolors the target.
func (s *Session) SetHue(h float64) {
	s.Hue = clamp01(h)
	s.applyHSV()
}

// SetSatVal sets saturation and value (0..1) and recolors the target.
func (s *Session) SetSatVal(sat, val float64) {
	s.Sat = clamp01(sat)
	s.Val = clamp01(val)
	s.applyHSV()
}

// SetColor assigns c to the target directly, as a palette swatch does.
func (s *Session) SetColor(c levels.Color) {
	s.setTarget(c)
	s.syncHSV()
}

// SuggestSecondary derives the secondary from the primary, a lighter shade
// of the same hue, and points the picker at it.
func (s *Session) SuggestSecondary() {
	s.Secondary = palette.Lighter(s.Primary, suggestLighten)
	s.Target = TargetSecondary
	s.syncHSV()
	s.Status = "Secondary set to " + palette.Hex(s.Secondary)
}

func (s *Session) syncHSV() {
	s.Hue, s.Sat, s.Val = palette.ToHSV(s.TargetColor())
}

func (s *Session) applyHSV() {
	s.setTarget(palette.FromHSV(s.Hue, s.Sat, s.Val))
}

func (s *Session) setTarget(c levels.Color) {
	if s.Target == TargetSecondary {
		s.Secondary = c
		return
	}
	s.Primary = c
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
