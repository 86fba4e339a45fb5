package colormath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#333333", "#333333", true},
		{"#FFF", "#ffffff", true},
		{"rgb(51,51,51)", "#333333", true},
		{"rgb(51, 51, 51)", "#333333", true},
		{"rgba(255, 0, 0, 0.5)", "#ff0000", true},
		{"white", "#ffffff", true},
		{"Navy", "#000080", true},
		{"transparent", "", false},
		{"", "", false},
		{"not-a-color", "", false},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		assert.Equal(t, tc.ok, ok, "Normalize(%q)", tc.in)
		assert.Equal(t, tc.want, got, "Normalize(%q)", tc.in)
	}
}

func TestHexToRGB(t *testing.T) {
	r, g, b := HexToRGB("#333333")
	assert.Equal(t, [3]int{51, 51, 51}, [3]int{r, g, b})

	r, g, b = HexToRGB("#ff8000")
	assert.Equal(t, [3]int{255, 128, 0}, [3]int{r, g, b})
}

func TestHexToHSL(t *testing.T) {
	hsl := HexToHSL("#333333")
	assert.InDelta(t, 0, hsl.Hue, 1e-9)
	assert.InDelta(t, 0, hsl.Saturation, 1e-9)
	assert.InDelta(t, 20, hsl.Lightness, 1e-9)

	hsl = HexToHSL("#ff0000")
	assert.InDelta(t, 0, hsl.Hue, 1e-9)
	assert.InDelta(t, 100, hsl.Saturation, 1e-9)
	assert.InDelta(t, 50, hsl.Lightness, 1e-9)

	hsl = HexToHSL("#0000ff")
	assert.InDelta(t, 240, hsl.Hue, 1e-9)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "gray", Category(HSL{Hue: 0, Saturation: 5, Lightness: 50}))
	assert.Equal(t, "black", Category(HSL{Hue: 0, Saturation: 5, Lightness: 10}))
	assert.Equal(t, "white", Category(HSL{Hue: 0, Saturation: 5, Lightness: 90}))
	assert.Equal(t, "red", Category(HSL{Hue: 10, Saturation: 80, Lightness: 50}))
	assert.Equal(t, "green", Category(HSL{Hue: 150, Saturation: 80, Lightness: 50}))
	assert.Equal(t, "dark_blue", Category(HSL{Hue: 220, Saturation: 80, Lightness: 20}))
	assert.Equal(t, "light_purple", Category(HSL{Hue: 280, Saturation: 80, Lightness: 85}))
}

func TestContrastRatio(t *testing.T) {
	// Black on white is the WCAG maximum.
	assert.InDelta(t, 21, ContrastRatio("#000000", "#ffffff"), 0.01)
	// Order does not matter.
	assert.InDelta(t, ContrastRatio("#333333", "#ffffff"), ContrastRatio("#ffffff", "#333333"), 1e-9)
	assert.InDelta(t, 1, ContrastRatio("#808080", "#808080"), 1e-9)
}

func TestHarmonyFewColors(t *testing.T) {
	h := Harmony(nil)
	assert.Equal(t, "monochromatic", h.Type)
	assert.InDelta(t, 1.0, h.Score, 1e-9)

	h = Harmony([]string{"#ff0000"})
	assert.Equal(t, "monochromatic", h.Type)
	assert.InDelta(t, 1.0, h.Score, 1e-9)
}

func TestHarmonySchemes(t *testing.T) {
	cases := []struct {
		name   string
		colors []string
		typ    string
		score  float64
	}{
		{"monochromatic", []string{"#ff0000", "#ee1111"}, "monochromatic", 0.8},
		{"analogous", []string{"#ff0000", "#ff8000"}, "analogous", 0.9},
		{"complementary", []string{"#ff0000", "#80ff00"}, "complementary", 1.0},
		{"triadic", []string{"#ff0000", "#00ff00"}, "triadic", 0.9},
		{"split-complementary", []string{"#ff0000", "#00ffff"}, "split-complementary", 0.85},
	}
	for _, tc := range cases {
		h := Harmony(tc.colors)
		require.Equal(t, tc.typ, h.Type, tc.name)
		assert.InDelta(t, tc.score, h.Score, 1e-9, tc.name)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	hex, ok := Normalize("rgb(51,51,51)")
	require.True(t, ok)
	assert.Equal(t, "#333333", hex)

	hsl := HexToHSL(hex)
	assert.InDelta(t, 20, hsl.Lightness, 0.01)
}
