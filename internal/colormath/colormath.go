// Package colormath provides pure color-conversion and scoring helpers used
// by the visual analysis agents: normalization to hex, RGB/HSL conversion,
// WCAG contrast ratios, and palette harmony scoring.
package colormath

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexRe   = regexp.MustCompile(`^#[0-9a-f]{6}$`)
	shortRe = regexp.MustCompile(`^#[0-9a-f]{3}$`)
	rgbRe   = regexp.MustCompile(`^rgb\((\d+),\s*(\d+),\s*(\d+)\)$`)
	rgbaRe  = regexp.MustCompile(`^rgba\((\d+),\s*(\d+),\s*(\d+),\s*[\d.]+\)$`)
)

// namedColors maps CSS color keywords to their hex values.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"maroon":  "#800000",
	"olive":   "#808000",
	"navy":    "#000080",
	"aqua":    "#00ffff",
	"teal":    "#008080",
	"fuchsia": "#ff00ff",
	"lime":    "#00ff00",
}

// Normalize converts a CSS color value (hex, short hex, rgb(), rgba(), or a
// named color) to lowercase "#rrggbb" form. The second return is false when
// the value is not a recognized color.
func Normalize(color string) (string, bool) {
	color = strings.ToLower(strings.TrimSpace(color))

	if hexRe.MatchString(color) {
		return color, true
	}
	if shortRe.MatchString(color) {
		return fmt.Sprintf("#%c%c%c%c%c%c", color[1], color[1], color[2], color[2], color[3], color[3]), true
	}
	if m := rgbRe.FindStringSubmatch(color); m != nil {
		return rgbToHex(m[1], m[2], m[3])
	}
	if m := rgbaRe.FindStringSubmatch(color); m != nil {
		return rgbToHex(m[1], m[2], m[3])
	}
	hex, ok := namedColors[color]
	return hex, ok
}

func rgbToHex(rs, gs, bs string) (string, bool) {
	r, _ := strconv.Atoi(rs)
	g, _ := strconv.Atoi(gs)
	b, _ := strconv.Atoi(bs)
	if r > 255 || g > 255 || b > 255 {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
}

// HexToRGB converts "#rrggbb" to its RGB components.
func HexToRGB(hex string) (r, g, b int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	rv, _ := strconv.ParseInt(hex[0:2], 16, 32)
	gv, _ := strconv.ParseInt(hex[2:4], 16, 32)
	bv, _ := strconv.ParseInt(hex[4:6], 16, 32)
	return int(rv), int(gv), int(bv)
}

// HSL is a color in hue/saturation/lightness space. Hue is in degrees
// [0,360); saturation and lightness are percentages [0,100].
type HSL struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// RGBToHSL converts RGB components (0-255) to HSL.
func RGBToHSL(r, g, b int) HSL {
	rf, gf, bf := float64(r)/255.0, float64(g)/255.0, float64(b)/255.0

	cmax := math.Max(rf, math.Max(gf, bf))
	cmin := math.Min(rf, math.Min(gf, bf))
	delta := cmax - cmin

	var h float64
	switch {
	case delta == 0:
		h = 0
	case cmax == rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
		if h < 0 {
			h += 360
		}
	case cmax == gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}

	l := (cmax + cmin) / 2

	var s float64
	if delta != 0 {
		s = delta / (1 - math.Abs(2*l-1))
	}

	return HSL{Hue: h, Saturation: s * 100, Lightness: l * 100}
}

// HexToHSL converts "#rrggbb" to HSL, rounded to two decimal places.
func HexToHSL(hex string) HSL {
	r, g, b := HexToRGB(hex)
	hsl := RGBToHSL(r, g, b)
	return HSL{
		Hue:        round2(hsl.Hue),
		Saturation: round2(hsl.Saturation),
		Lightness:  round2(hsl.Lightness),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Category buckets an HSL color into a coarse name (black, white, gray, or a
// hue family with a dark_/light_ intensity prefix).
func Category(hsl HSL) string {
	h, s, l := hsl.Hue, hsl.Saturation, hsl.Lightness

	if s < 10 {
		switch {
		case l < 20:
			return "black"
		case l > 80:
			return "white"
		default:
			return "gray"
		}
	}

	var base string
	switch {
	case h <= 30:
		base = "red"
	case h <= 60:
		base = "orange"
	case h <= 120:
		base = "yellow"
	case h <= 180:
		base = "green"
	case h <= 240:
		base = "blue"
	case h <= 300:
		base = "purple"
	default:
		base = "red"
	}

	switch {
	case l < 30:
		return "dark_" + base
	case l > 70:
		return "light_" + base
	default:
		return base
	}
}

// ContrastRatio computes the WCAG 2.x contrast ratio between two hex colors.
// The result is in [1,21]; 4.5 is the AA threshold for normal text.
func ContrastRatio(color1, color2 string) float64 {
	l1 := relativeLuminance(color1)
	l2 := relativeLuminance(color2)
	lighter := math.Max(l1, l2)
	darker := math.Min(l1, l2)
	return (lighter + 0.05) / (darker + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b := HexToRGB(hex)
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

func linearize(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// HarmonyResult describes how well a palette's hues relate.
type HarmonyResult struct {
	Type           string  `json:"harmony_type"`
	Score          float64 `json:"score"`
	AverageHueDiff float64 `json:"average_hue_difference"`
}

// harmonyScores maps each harmony type to its design score.
var harmonyScores = map[string]float64{
	"monochromatic":       0.8,
	"analogous":           0.9,
	"complementary":       1.0,
	"triadic":             0.9,
	"split-complementary": 0.85,
	"discordant":          0.5,
}

// Harmony classifies a palette of hex colors by average pairwise hue
// difference and scores the resulting harmony type. Palettes with fewer than
// two colors are monochromatic with a perfect score.
func Harmony(colors []string) HarmonyResult {
	if len(colors) < 2 {
		return HarmonyResult{Type: "monochromatic", Score: 1.0}
	}

	hues := make([]float64, len(colors))
	for i, c := range colors {
		hues[i] = HexToHSL(c).Hue
	}

	var diffs []float64
	for i := 0; i < len(hues); i++ {
		for j := i + 1; j < len(hues); j++ {
			diff := math.Abs(hues[i] - hues[j])
			if diff > 180 {
				diff = 360 - diff
			}
			diffs = append(diffs, diff)
		}
	}

	var sum float64
	for _, d := range diffs {
		sum += d
	}
	avg := sum / float64(len(diffs))

	harmonyType := "discordant"
	switch {
	case avg <= 20:
		harmonyType = "monochromatic"
	case avg <= 50 && avg >= 21:
		harmonyType = "analogous"
	case avg >= 80 && avg <= 100:
		harmonyType = "complementary"
	case avg >= 110 && avg <= 130:
		harmonyType = "triadic"
	case avg >= 150 && avg <= 180:
		harmonyType = "split-complementary"
	}

	return HarmonyResult{
		Type:           harmonyType,
		Score:          harmonyScores[harmonyType],
		AverageHueDiff: avg,
	}
}
