package nbplot

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	DefaultWidth     = 750
	DefaultHeight    = 300
	DefaultPointSize = 2
)

// Scale is the subset of a uPlot scale definition that can be configured.
type Scale struct {
	Time  *bool       `json:"time,omitempty" yaml:"time"`
	Auto  *bool       `json:"auto,omitempty" yaml:"auto"`
	Range *[2]float64 `json:"range,omitempty" yaml:"range"`
	Distr int         `json:"distr,omitempty" yaml:"distr"`
}

// ScaleConfig maps a scale key ("x", "y", ...) to its definition.
type ScaleConfig map[string]Scale

type Points struct {
	Space int `json:"space" yaml:"space"`
	Size  int `json:"size" yaml:"size"`
}

// SeriesConfig is a uPlot series entry. The first entry describes the
// x-series, the rest describe one y-series each.
type SeriesConfig struct {
	Label  string  `json:"label" yaml:"label"`
	Stroke string  `json:"stroke,omitempty" yaml:"stroke"`
	Width  float64 `json:"width,omitempty" yaml:"width"`
	Points *Points `json:"points,omitempty" yaml:"points"`
}

// Options are the caller-facing styling knobs. Zero values mean "use the
// default".
type Options struct {
	Title  string      `yaml:"title"`
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Scales ScaleConfig `yaml:"scales"`

	// Replaces the leading series list (by default a single x entry). The
	// generated y-series entries are appended after it.
	Series []SeriesConfig `yaml:"series"`

	PointSize int  `yaml:"pointSize"`
	Scatter   bool `yaml:"scatter"`
}

// Merge returns o with every non-zero field of override applied on top.
func (o Options) Merge(override Options) Options {
	if override.Title != "" {
		o.Title = override.Title
	}
	if override.Width != 0 {
		o.Width = override.Width
	}
	if override.Height != 0 {
		o.Height = override.Height
	}
	if override.Scales != nil {
		o.Scales = override.Scales
	}
	if override.Series != nil {
		o.Series = override.Series
	}
	if override.PointSize != 0 {
		o.PointSize = override.PointSize
	}
	if override.Scatter {
		o.Scatter = true
	}
	return o
}

// ChartOptions is the options object handed to uPlot.
type ChartOptions struct {
	Title   string         `json:"title"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Scales  ScaleConfig    `json:"scales"`
	Series  []SeriesConfig `json:"series"`
	Scatter bool           `json:"scatter,omitempty"`
}

func defaultScales() ScaleConfig {
	timeAxis := false
	auto := true
	return ScaleConfig{
		"x": {Time: &timeAxis},
		"y": {Auto: &auto},
	}
}

func defaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:  "",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Scales: defaultScales(),
		Series: []SeriesConfig{{Label: "x"}},
	}
}

// BuildOptions produces the uPlot options for numYSeries y-series.
//
// Labels are matched to y-series by position. Missing labels are filled in
// as y_0, y_1, ... and surplus labels are dropped. Each y-series gets its
// own color from DefaultPalette, so at most PaletteSize y-series can be
// plotted.
func BuildOptions(numYSeries int, labels []string, opts Options) (ChartOptions, error) {
	logger := logrus.WithField("tag", "OptionBuilder")

	if numYSeries < 0 {
		return ChartOptions{}, &InputError{
			Op:     "options",
			Series: -1,
			Index:  -1,
			Err:    fmt.Errorf("negative y-series count %d: %w", numYSeries, ErrLengthMismatch),
		}
	}

	chart := defaultChartOptions()
	if opts.Title != "" {
		chart.Title = opts.Title
	}
	if opts.Width != 0 {
		chart.Width = opts.Width
	}
	if opts.Height != 0 {
		chart.Height = opts.Height
	}
	if opts.Scales != nil {
		chart.Scales = opts.Scales
	}
	if opts.Series != nil {
		chart.Series = append([]SeriesConfig(nil), opts.Series...)
	}
	chart.Scatter = opts.Scatter

	size := DefaultPointSize
	if opts.PointSize != 0 {
		size = opts.PointSize
	}

	labels = fitLabels(numYSeries, labels)
	logger.WithField("labels", labels).Debug("fitted series labels")

	for i, label := range labels {
		color, err := DefaultPalette.Color(i)
		if err != nil {
			logger.WithError(err).Warnf("cannot assign colors to %d y-series", numYSeries)
			return ChartOptions{}, err
		}

		chart.Series = append(chart.Series, SeriesConfig{
			Label:  label,
			Stroke: color,
			Points: &Points{Space: 0, Size: size},
		})
	}

	return chart, nil
}

// Pads or truncates labels to exactly n entries. Always returns a new slice.
func fitLabels(n int, labels []string) []string {
	fitted := make([]string, 0, n)
	if len(labels) >= n {
		return append(fitted, labels[:n]...)
	}

	fitted = append(fitted, labels...)
	missing := n - len(labels)
	for i := 0; i < missing; i++ {
		fitted = append(fitted, fmt.Sprintf("y_%d", i))
	}
	return fitted
}
