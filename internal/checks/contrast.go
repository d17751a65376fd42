package checks

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidColor is returned for a colour that is not an rgb()/rgba() value
var ErrInvalidColor = errors.New("invalid color")

// MinContrastAA is the WCAG AA minimum for normal text
const MinContrastAA = 4.5

var channelRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// RGB is a colour with 0-255 channels
type RGB struct {
	R, G, B float64
}

// ParseRGB reads the first three channels of a computed style colour such
// as "rgb(34, 34, 34)" or "rgba(0, 0, 0, 0.5)".
func ParseRGB(s string) (RGB, error) {
	m := channelRe.FindAllString(s, -1)
	if len(m) < 3 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseFloat(m[i], 64)
		if err != nil || v > 255 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		c[i] = v
	}
	return RGB{c[0], c[1], c[2]}, nil
}

// Luminance is the relative luminance of the colour
func (c RGB) Luminance() float64 {
	lin := func(v float64) float64 {
		v /= 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio returns the WCAG contrast ratio of two colours, from 1 to 21
func ContrastRatio(a, b RGB) float64 {
	l1, l2 := a.Luminance(), b.Luminance()
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// SufficientContrast parses both colours and checks them against WCAG AA
func SufficientContrast(foreground, background string) (bool, float64, error) {
	fg, err := ParseRGB(foreground)
	if err != nil {
		return false, 0, err
	}
	bg, err := ParseRGB(background)
	if err != nil {
		return false, 0, err
	}
	ratio := ContrastRatio(fg, bg)
	return ratio >= MinContrastAA, ratio, nil
}
