// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package epsocr

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const histTicks = 16

// createVLine creates a vertical line with a particular x value for
// a graph
func createVLine(x float64, maxy float64, c drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		XValues: []float64{x, x},
		YValues: []float64{0, maxy},
		Style: chart.Style{
			StrokeColor:     c,
			StrokeWidth:     2,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
}

// HistGraph creates a graph of the histogram of gray levels in an
// image, with a line marking the level chosen for binarisation
func HistGraph(hist [256]int, level uint8, title string, w io.Writer) error {
	var xvalues, yvalues []float64
	var maxy float64
	for i, n := range hist {
		xvalues = append(xvalues, float64(i))
		yvalues = append(yvalues, float64(n))
		if float64(n) > maxy {
			maxy = float64(n)
		}
	}
	if maxy == 0 {
		return errors.New("Empty histogram")
	}

	var ticks []chart.Tick
	for i := 0; i <= histTicks; i++ {
		n := float64(i * 256 / histTicks)
		if n > 255 {
			n = 255
		}
		ticks = append(ticks, chart.Tick{Value: n, Label: fmt.Sprintf("%.0f", n)})
	}

	mainSeries := chart.ContinuousSeries{
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			FillColor:   chart.ColorAlternateBlue,
		},
		XValues: xvalues,
		YValues: yvalues,
	}

	levelSeries := createVLine(float64(level), maxy, chart.ColorRed)

	annotations := []chart.Value2{
		{Label: fmt.Sprintf("threshold %d", level), XValue: float64(level), YValue: maxy},
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1920,
		Height: 1080,
		XAxis: chart.XAxis{
			Name: "Gray level",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: 255.0,
			},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Pixels",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: maxy,
			},
		},
		Series: []chart.Series{
			mainSeries,
			levelSeries,
			chart.AnnotationSeries{
				Annotations: annotations,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
