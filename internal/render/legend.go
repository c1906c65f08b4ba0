package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	legendWidth = 90
	barWidth    = 14
	tickCount   = 5
)

var tickPrinter = message.NewPrinter(language.English)

// tickLabel formats a legend value: counts with thousands separators,
// ratios with two decimals.
func tickLabel(v float64, s Scale) string {
	if s.Max-s.Min >= 10 {
		return tickPrinter.Sprintf("%d", int64(math.Round(v)))
	}
	return tickPrinter.Sprintf("%.2f", v)
}

// drawColorbar draws a vertical viridis bar for s in area, high values at
// the top.
func drawColorbar(dst *image.RGBA, s Scale, area image.Rectangle, ink color.Color) {
	h := area.Dy() * 4 / 5
	if h < 2 {
		return
	}
	top := area.Min.Y + (area.Dy()-h)/2
	bar := image.Rect(area.Min.X+8, top, area.Min.X+8+barWidth, top+h)

	for y := bar.Min.Y; y < bar.Max.Y; y++ {
		frac := float64(bar.Max.Y-1-y) / float64(h-1)
		v := s.Min + frac*(s.Max-s.Min)
		line := image.Rect(bar.Min.X, y, bar.Max.X, y+1)
		draw.Draw(dst, line, image.NewUniform(s.Color(v)), image.Point{}, draw.Src)
	}
	outline(dst, bar, ink)

	ticks := s.Ticks(tickCount)
	for _, v := range ticks {
		frac := 0.0
		if s.Max > s.Min {
			frac = (v - s.Min) / (s.Max - s.Min)
		}
		y := bar.Max.Y - 1 - int(math.Round(frac*float64(h-1)))
		draw.Draw(dst, image.Rect(bar.Max.X, y, bar.Max.X+4, y+1), image.NewUniform(ink), image.Point{}, draw.Src)
		drawText(dst, tickLabel(v, s), bar.Max.X+6, y+face.Ascent/2, ink)
	}
}

func outline(dst *image.RGBA, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X-1, r.Min.Y-1, r.Max.X+1, r.Min.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X-1, r.Max.Y, r.Max.X+1, r.Max.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X-1, r.Min.Y, r.Min.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X, r.Min.Y, r.Max.X+1, r.Max.Y), u, image.Point{}, draw.Src)
}
