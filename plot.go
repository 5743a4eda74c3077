package nbplot

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewChart builds a chart from columns laid out as [x, y1, y2, ...]. All
// columns must have the same length; a y value may be Missing().
func NewChart(data []Series, labels []string, opts Options) (Chart, error) {
	if len(data) < 2 {
		return Chart{}, &InputError{
			Op:     "plot",
			Series: -1,
			Index:  -1,
			Err:    fmt.Errorf("need an x-series and at least one y-series, got %d series: %w", len(data), ErrNoData),
		}
	}

	dataset, err := Align(SeriesGroup{X: data[0], Ys: data[1:]})
	if err != nil {
		return Chart{}, err
	}

	options, err := BuildOptions(len(dataset.Ys), labels, opts)
	if err != nil {
		return Chart{}, err
	}

	return Chart{Data: dataset, Options: options}, nil
}

// NewMultiXYChart builds a scatter chart from columns laid out as
// [x1, y1, x2, y2, ...], where each x/y pair may have its own length and
// x-values. The pairs are merged onto one x-axis with Align.
func NewMultiXYChart(data []Series, labels []string, opts Options) (Chart, error) {
	groups, err := GroupsFromColumns(data)
	if err != nil {
		return Chart{}, err
	}

	dataset, err := Align(groups...)
	if err != nil {
		return Chart{}, err
	}

	opts.Scatter = true
	options, err := BuildOptions(len(dataset.Ys), labels, opts)
	if err != nil {
		return Chart{}, err
	}

	return Chart{Data: dataset, Options: options}, nil
}

// PlotData renders a line chart of [x, y1, y2, ...].
func PlotData(data []Series, labels []string, format Format, opts Options) (string, error) {
	chart, err := NewChart(data, labels, opts)
	if err != nil {
		return "", err
	}
	return render(chart, format)
}

// PlotScatter is PlotData with the connecting lines hidden.
func PlotScatter(data []Series, labels []string, format Format, opts Options) (string, error) {
	opts.Scatter = true
	return PlotData(data, labels, format, opts)
}

// PlotMultiXY renders a scatter chart of [x1, y1, x2, y2, ...]. See
// NewMultiXYChart.
func PlotMultiXY(data []Series, labels []string, format Format, opts Options) (string, error) {
	chart, err := NewMultiXYChart(data, labels, opts)
	if err != nil {
		return "", err
	}
	return render(chart, format)
}

func render(chart Chart, format Format) (string, error) {
	out, err := chart.Render(format)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"tag":     "Plot",
		"format":  format,
		"points":  chart.Data.Len(),
		"ySeries": len(chart.Data.Ys),
		"bytes":   len(out),
	}).Debug("rendered chart")

	return out, nil
}
