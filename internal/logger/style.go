package logger

import "github.com/fatih/color"

// Style is a console rendering hint for one fan-out call. A nil *Style
// renders unstyled; FileOnly suppresses the console echo entirely.
type Style struct {
	c *color.Color
}

// FileOnly is the suppression sentinel: the message goes to file sinks
// only, never to the console.
var FileOnly = &Style{}

func newStyle(c *color.Color) *Style { return &Style{c: c} }

// Sprint renders the message with the style's color sequence applied.
func (s *Style) Sprint(msg string) string {
	if s == nil || s.c == nil {
		return msg
	}
	return s.c.Sprint(msg)
}

var (
	styleBasic = newStyle(color.New(color.BgBlack, color.FgWhite))
	styleChat  = newStyle(color.New(color.BgBlack, color.FgWhite))
	styleTopic = newStyle(color.New(color.BgBlack, color.FgCyan))

	// Rank/camscore movement styles. Which one a change maps to is
	// decided by the dispatcher via RankDirection.
	styleRankUp   = newStyle(color.New(color.BgCyan, color.FgBlack))
	styleRankDown = newStyle(color.New(color.BgRed, color.FgWhite))
)

// Tip intensity interpolation: black text on a yellow background whose
// brightness scales with the tip amount, saturating at maxIntensityTip
// tokens.
const (
	minYellowIntensity = 0x20
	maxYellowIntensity = 0xFF
	maxIntensityTip    = 1000
)

// tipStyle returns the gradient style for a tip of the given size.
func tipStyle(tokens int) *Style {
	span := maxYellowIntensity - minYellowIntensity
	intensity := minYellowIntensity + tokens*span/maxIntensityTip
	if intensity > maxYellowIntensity {
		intensity = maxYellowIntensity
	}
	if intensity < minYellowIntensity {
		intensity = minYellowIntensity
	}
	return newStyle(color.BgRGB(intensity, intensity, 0).AddRGB(0, 0, 0))
}
