package logger

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStyle_Sprint_NilAndFileOnly(t *testing.T) {
	var s *Style
	assert.Equal(t, "hello", s.Sprint("hello"), "nil style renders unstyled")
	assert.Equal(t, "hello", FileOnly.Sprint("hello"), "the sentinel carries no color of its own")
}

func TestTipStyle_IntensityGradient(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	cases := []struct {
		tokens int
		bg     string
	}{
		{0, "48;2;32;32;0"},       // floor intensity
		{500, "48;2;143;143;0"},   // midpoint
		{1000, "48;2;255;255;0"},  // saturation point
		{50000, "48;2;255;255;0"}, // clamped above
	}
	for _, tc := range cases {
		out := tipStyle(tc.tokens).Sprint("tip")
		assert.Contains(t, out, tc.bg, "tokens=%d", tc.tokens)
		assert.Contains(t, out, "38;2;0;0;0", "tip text is always black")
	}
}

func TestTipStyle_NegativeTokensClampToFloor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	out := tipStyle(-5).Sprint("tip")
	assert.Contains(t, out, "48;2;32;32;0")
}
