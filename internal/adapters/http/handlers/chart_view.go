package handlers

import (
	"math"
	"strconv"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

// Chart canvas geometry in SVG user units.
const (
	chartWidth        = 960
	chartHeight       = 520
	chartMarginLeft   = 70
	chartMarginRight  = 240
	chartMarginTop    = 20
	chartMarginBottom = 170
	chartBarGap       = 0.2
	chartYTicks       = 5
	legendRowHeight   = 22
	maxLabelRunes     = 28
)

// chartView is the SVG geometry of a stacked bar chart.
type chartView struct {
	Width, Height  float64
	PlotLeft       float64
	PlotRight      float64
	PlotTop        float64
	PlotBottom     float64
	XLabel, YLabel string
	ColorLabel     string
	Bars           []barRect
	XTicks         []xTick
	YTicks         []yTick
	Legend         []legendItem
}

type barRect struct {
	X, Y, W, H float64
	Fill       string
	Title      string
}

type xTick struct {
	X     float64
	Label string
	Full  string
}

type yTick struct {
	Y     float64
	Label string
}

type legendItem struct {
	Y     float64
	Color string
	Name  string
}

// newChartView lays out the chart. Categories share the plot width evenly and
// segments are stacked in series order.
func newChartView(c *domain.Chart) *chartView {
	v := &chartView{
		Width:      chartWidth,
		Height:     chartHeight,
		PlotLeft:   chartMarginLeft,
		PlotRight:  chartWidth - chartMarginRight,
		PlotTop:    chartMarginTop,
		PlotBottom: chartHeight - chartMarginBottom,
		XLabel:     c.XLabel,
		YLabel:     c.YLabel,
		ColorLabel: c.ColorLabel,
	}

	step, top := niceScale(c.MaxTotal(), chartYTicks)
	plotH := v.PlotBottom - v.PlotTop
	scale := func(val float64) float64 { return val / top * plotH }

	decimals := max(0, int(-math.Floor(math.Log10(step))))
	for i := 0; float64(i)*step <= top+step/2; i++ {
		t := float64(i) * step
		v.YTicks = append(v.YTicks, yTick{
			Y:     v.PlotBottom - scale(t),
			Label: strconv.FormatFloat(t, 'f', decimals, 64),
		})
	}

	if len(c.Categories) > 0 {
		slot := (v.PlotRight - v.PlotLeft) / float64(len(c.Categories))
		barW := slot * (1 - chartBarGap)

		for i, cat := range c.Categories {
			x := v.PlotLeft + float64(i)*slot + (slot-barW)/2
			y := v.PlotBottom

			for _, s := range c.Series {
				if i >= len(s.Values) || s.Values[i] <= 0 {
					continue
				}

				h := scale(s.Values[i])
				y -= h

				v.Bars = append(v.Bars, barRect{
					X: x, Y: y, W: barW, H: h,
					Fill:  s.Color,
					Title: cat + " · " + s.Name + ": " + strconv.FormatFloat(s.Values[i], 'f', -1, 64),
				})
			}

			v.XTicks = append(v.XTicks, xTick{
				X:     x + barW/2,
				Label: truncateLabel(cat),
				Full:  cat,
			})
		}
	}

	for i, s := range c.Series {
		v.Legend = append(v.Legend, legendItem{
			Y:     v.PlotTop + float64(i+1)*legendRowHeight,
			Color: s.Color,
			Name:  s.Name,
		})
	}

	return v
}

// niceScale picks a 1/2/5 tick step so that about n ticks cover maxValue, and
// returns the step and the rounded axis top.
func niceScale(maxValue float64, n int) (step, top float64) {
	if maxValue <= 0 || math.IsNaN(maxValue) || math.IsInf(maxValue, 0) {
		return 1, 1
	}

	raw := maxValue / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))

	switch norm := raw / mag; {
	case norm <= 1:
		step = mag
	case norm <= 2:
		step = 2 * mag
	case norm <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}

	return step, math.Ceil(maxValue/step) * step
}

func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= maxLabelRunes {
		return s
	}

	return string(r[:maxLabelRunes-1]) + "…"
}
