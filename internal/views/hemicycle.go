// Package views derives presentation-ready data from a Snapshot: the
// hemicycle layout, the participation panel and per-municipality map data.
// Renderers read these instead of re-deriving anything from raw rows.
package views

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/albapepper/elecciones-aragon/internal/results"
)

// Chamber defaults for the Cortes de Aragón.
const (
	DefaultTotalSeats = 67
	DefaultMajority   = 34
)

// ArcSpan is the angular range of the semicircle, drawn from 180° down to 0°.
const ArcSpan = 180.0

// minLabelSeats is the smallest segment that gets its seat count drawn.
const minLabelSeats = 3

// HemicycleConfig sets the chamber size and the drawing geometry.
type HemicycleConfig struct {
	TotalSeats  int
	Majority    int
	CX, CY      float64
	InnerRadius float64
	OuterRadius float64
}

// DefaultHemicycleConfig returns the Cortes de Aragón on a 400×200 canvas.
func DefaultHemicycleConfig() HemicycleConfig {
	return HemicycleConfig{
		TotalSeats:  DefaultTotalSeats,
		Majority:    DefaultMajority,
		CX:          200,
		CY:          200,
		InnerRadius: 100,
		OuterRadius: 180,
	}
}

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one party's slice of the hemicycle.
type Segment struct {
	Party      results.PartySeatResult `json:"party"`
	StartAngle float64                 `json:"start_angle"`
	EndAngle   float64                 `json:"end_angle"`
	MidAngle   float64                 `json:"mid_angle"`
	Label      Point                   `json:"label"`
	ShowLabel  bool                    `json:"show_label"`
	Path       string                  `json:"path"`
}

// Line is a straight marker between two points.
type Line struct {
	Angle float64 `json:"angle"`
	From  Point   `json:"from"`
	To    Point   `json:"to"`
}

// HemicycleLayout is the full chart: segments in display order plus the
// majority marker.
type HemicycleLayout struct {
	TotalSeats     int       `json:"total_seats"`
	Majority       int       `json:"majority"`
	AllocatedSeats int       `json:"allocated_seats"`
	Segments       []Segment `json:"segments"`
	MajorityLine   Line      `json:"majority_line"`
}

// Displayed drops parties that hold no seats now and held none before. The
// input is left untouched.
func Displayed(parties []results.PartySeatResult) []results.PartySeatResult {
	out := make([]results.PartySeatResult, 0, len(parties))
	for _, p := range parties {
		if p.Seats2025 > 0 || p.Seats2023 > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Ordered returns the displayed left bloc by seats descending followed by
// the right bloc by seats ascending, so the two blocs meet in the middle.
// Parties without a bloc are not placed.
func Ordered(parties []results.PartySeatResult) []results.PartySeatResult {
	var left, right []results.PartySeatResult
	for _, p := range Displayed(parties) {
		switch p.Bloc {
		case results.BlocLeft:
			left = append(left, p)
		case results.BlocRight:
			right = append(right, p)
		}
	}
	sort.SliceStable(left, func(i, j int) bool { return left[i].Seats2025 > left[j].Seats2025 })
	sort.SliceStable(right, func(i, j int) bool { return right[i].Seats2025 < right[j].Seats2025 })
	return append(left, right...)
}

// Hemicycle lays the ordered parties along the semicircle. Each span is
// proportional to seats/TotalSeats; angles never pass 0°, so seats beyond
// the declared total get an empty span and a short chamber leaves the end of
// the arc unfilled.
func Hemicycle(parties []results.PartySeatResult, cfg HemicycleConfig) HemicycleLayout {
	layout := HemicycleLayout{
		TotalSeats: cfg.TotalSeats,
		Majority:   cfg.Majority,
		Segments:   []Segment{},
	}

	majorityAngle := ArcSpan
	if cfg.TotalSeats > 0 {
		majorityAngle = clampAngle(ArcSpan - float64(cfg.Majority)/float64(cfg.TotalSeats)*ArcSpan)
	}
	layout.MajorityLine = Line{
		Angle: majorityAngle,
		From:  PolarToCartesian(cfg.CX, cfg.CY, cfg.InnerRadius-10, majorityAngle),
		To:    PolarToCartesian(cfg.CX, cfg.CY, cfg.OuterRadius+10, majorityAngle),
	}

	if cfg.TotalSeats <= 0 {
		return layout
	}

	total := float64(cfg.TotalSeats)
	midR := (cfg.InnerRadius + cfg.OuterRadius) / 2
	acc := 0
	for _, p := range Ordered(parties) {
		start := clampAngle(ArcSpan - float64(acc)/total*ArcSpan)
		end := clampAngle(ArcSpan - float64(acc+p.Seats2025)/total*ArcSpan)
		acc += p.Seats2025
		mid := (start + end) / 2

		layout.Segments = append(layout.Segments, Segment{
			Party:      p,
			StartAngle: start,
			EndAngle:   end,
			MidAngle:   mid,
			Label:      PolarToCartesian(cfg.CX, cfg.CY, midR, mid),
			ShowLabel:  p.Seats2025 >= minLabelSeats,
			Path:       DescribeArc(cfg.CX, cfg.CY, cfg.InnerRadius, cfg.OuterRadius, start, end),
		})
	}
	layout.AllocatedSeats = acc
	return layout
}

// PolarToCartesian converts an angle in degrees (0° pointing right, growing
// counter-clockwise) into canvas coordinates, where y grows downwards.
func PolarToCartesian(cx, cy, radius, angleDeg float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{
		X: cx + radius*math.Cos(rad),
		Y: cy - radius*math.Sin(rad),
	}
}

// DescribeArc returns an SVG path for the ring sector between two angles.
func DescribeArc(cx, cy, innerR, outerR, startAngle, endAngle float64) string {
	outerStart := PolarToCartesian(cx, cy, outerR, startAngle)
	outerEnd := PolarToCartesian(cx, cy, outerR, endAngle)
	innerEnd := PolarToCartesian(cx, cy, innerR, endAngle)
	innerStart := PolarToCartesian(cx, cy, innerR, startAngle)

	largeArc := 0
	if math.Abs(endAngle-startAngle) > 180 {
		largeArc = 1
	}
	sweep, sweepInner := 1, 0
	if endAngle > startAngle {
		sweep, sweepInner = 0, 1
	}

	parts := []string{
		"M", num(outerStart.X), num(outerStart.Y),
		"A", num(outerR), num(outerR), "0", fmt.Sprint(largeArc), fmt.Sprint(sweep), num(outerEnd.X), num(outerEnd.Y),
		"L", num(innerEnd.X), num(innerEnd.Y),
		"A", num(innerR), num(innerR), "0", fmt.Sprint(largeArc), fmt.Sprint(sweepInner), num(innerStart.X), num(innerStart.Y),
		"Z",
	}
	return strings.Join(parts, " ")
}

func num(f float64) string {
	return fmt.Sprintf("%.3f", f)
}

func clampAngle(a float64) float64 {
	switch {
	case a < 0:
		return 0
	case a > ArcSpan:
		return ArcSpan
	}
	return a
}
