package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/terraincognita07/vitalog/internal/models"
	"github.com/wcharczuk/go-chart/v2"
)

// Rendered at 5x the embedded size so the chart stays legible at print
// resolution.
const chartScale = 5

var errNoChartData = errors.New("no consistency data")

func renderConsistencyChart(series []models.ProgressPoint, widthMM float64, heightMM float64) ([]byte, error) {
	if len(series) == 0 {
		return nil, errNoChartData
	}

	bars := make([]chart.Value, 0, len(series))
	for _, point := range series {
		label := point.Date
		if len(label) > 5 {
			label = label[5:] // keep MM-DD, full dates collide on narrow bars
		}
		bars = append(bars, chart.Value{
			Value: clampPercent(point.Percent),
			Label: label,
		})
	}

	pixelWidth := int(widthMM * chartScale)
	pixelHeight := int(heightMM * chartScale)

	graph := chart.BarChart{
		Width:    pixelWidth,
		Height:   pixelHeight,
		BarWidth: pixelWidth / (2 * len(bars)),
		Bars:     bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render consistency chart: %w", err)
	}
	return buf.Bytes(), nil
}

func clampPercent(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > 100:
		return 100
	default:
		return value
	}
}
