package nbplot

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Series is one axis or one line of chart data. A NaN entry is the
// missing-value marker: it is encoded as null so uPlot leaves a gap there.
type Series []float64

// Missing returns the missing-value marker.
func Missing() float64 {
	return math.NaN()
}

func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	c := make(Series, len(s))
	copy(c, s)
	return c
}

// MarshalJSON writes missing values as null and everything else with the
// shortest float representation. ±Inf has no JSON form and is written as
// null as well.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON is the inverse of MarshalJSON: null becomes Missing().
func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = Missing()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}

// SeriesGroup is one x-series together with the y-series plotted against
// it. All series within a group have the same length.
type SeriesGroup struct {
	X  Series
	Ys []Series
}

func (g SeriesGroup) clone() SeriesGroup {
	ys := make([]Series, len(g.Ys))
	for i, y := range g.Ys {
		ys[i] = y.Clone()
	}
	return SeriesGroup{X: g.X.Clone(), Ys: ys}
}

// AlignedDataset has a single x-series and every y-series padded to its
// length. This is the column layout uPlot consumes.
type AlignedDataset struct {
	X  Series
	Ys []Series
}

// Columns returns [X, Y0, Y1, ...].
func (d AlignedDataset) Columns() []Series {
	cols := make([]Series, 0, len(d.Ys)+1)
	cols = append(cols, d.X)
	cols = append(cols, d.Ys...)
	return cols
}

func (d AlignedDataset) Len() int {
	return len(d.X)
}

func (d AlignedDataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Columns())
}
