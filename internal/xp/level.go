package xp

import (
	"github.com/abhisek/spinlab/internal/errs"
)

// Curve is a table of cumulative XP thresholds. Curve[i] is the lifetime XP
// required to reach level i+1, so Curve[0] is always 0.
type Curve []int

// DefaultThresholds is the level curve used when none is configured.
var DefaultThresholds = []int{0, 500, 1200, 2100, 3200, 4500, 6000, 7800, 9800, 12000}

// NewCurve validates and returns a curve.
func NewCurve(thresholds []int) (Curve, error) {
	if len(thresholds) == 0 {
		return nil, errs.Invalid("levels", "at least one threshold is required")
	}
	if thresholds[0] != 0 {
		return nil, errs.Invalid("levels", "first threshold must be 0, got %d", thresholds[0])
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, errs.Invalid("levels", "thresholds must be strictly increasing at index %d", i)
		}
	}
	c := make(Curve, len(thresholds))
	copy(c, thresholds)
	return c, nil
}

// DefaultCurve returns the built-in ten level curve.
func DefaultCurve() Curve {
	c, _ := NewCurve(DefaultThresholds)
	return c
}

// MaxLevel returns the highest reachable level.
func (c Curve) MaxLevel() int {
	return len(c)
}

// Level describes a position on the curve.
type Level struct {
	Level      int  `json:"level"`
	Current    int  `json:"current"`  // XP earned inside this level
	Required   int  `json:"required"` // XP span of this level
	IsMaxLevel bool `json:"is_max_level"`
}

// Percent returns progress through the current level in [0, 100].
func (l Level) Percent() int {
	if l.IsMaxLevel || l.Required <= 0 {
		return 100
	}
	p := l.Current * 100 / l.Required
	if p > 100 {
		p = 100
	}
	return p
}

// LevelFor places a lifetime XP total on the curve. At the top level
// Required equals Current.
func (c Curve) LevelFor(xp int) Level {
	if len(c) == 0 {
		return Level{Level: 1, Current: xp, Required: xp, IsMaxLevel: true}
	}
	if xp < 0 {
		xp = 0
	}
	idx := 0
	for i, th := range c {
		if xp >= th {
			idx = i
		}
	}
	current := xp - c[idx]
	if idx == len(c)-1 {
		return Level{Level: idx + 1, Current: current, Required: current, IsMaxLevel: true}
	}
	return Level{
		Level:    idx + 1,
		Current:  current,
		Required: c[idx+1] - c[idx],
	}
}
