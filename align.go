package nbplot

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Align merges groups that each have their own x-domain into a single
// dataset with one ascending x-series. Every y-series is reordered to follow
// the merged x-series and carries the missing-value marker at positions
// whose x came from another group.
//
// Equal x-values from different groups are all kept. Their order is the
// order in which they were concatenated: earlier groups first.
//
// A single group is returned as is (copied).
func Align(groups ...SeriesGroup) (AlignedDataset, error) {
	if len(groups) == 0 {
		return AlignedDataset{}, &InputError{Op: "align", Series: -1, Index: -1, Err: ErrNoData}
	}

	for i, g := range groups {
		if err := validateGroup(i, g); err != nil {
			return AlignedDataset{}, err
		}
	}

	first := groups[0].clone()
	aligned := AlignedDataset{X: first.X, Ys: first.Ys}

	for _, g := range groups[1:] {
		aligned = mergeGroup(aligned, g)
	}

	logrus.WithFields(logrus.Fields{
		"tag":     "Aligner",
		"groups":  len(groups),
		"length":  aligned.Len(),
		"ySeries": len(aligned.Ys),
	}).Debug("aligned series groups")

	return aligned, nil
}

func mergeGroup(aligned AlignedDataset, g SeriesGroup) AlignedDataset {
	prevLen := len(aligned.X)
	newLen := prevLen + len(g.X)

	x := make(Series, 0, newLen)
	x = append(x, aligned.X...)
	x = append(x, g.X...)

	order := stableArgsort(x)

	merged := AlignedDataset{
		X:  permute(x, order),
		Ys: make([]Series, 0, len(aligned.Ys)+len(g.Ys)),
	}

	// Existing series contributed nothing for the new group's x-values.
	for _, y := range aligned.Ys {
		extended := make(Series, 0, newLen)
		extended = append(extended, y...)
		extended = append(extended, missingSeries(len(g.X))...)
		merged.Ys = append(merged.Ys, permute(extended, order))
	}

	// And the new series have nothing for the x-values merged so far.
	for _, y := range g.Ys {
		padded := make(Series, 0, newLen)
		padded = append(padded, missingSeries(prevLen)...)
		padded = append(padded, y...)
		merged.Ys = append(merged.Ys, permute(padded, order))
	}

	return merged
}

// Returns the permutation that sorts x ascending, keeping the original
// relative order of equal values.
func stableArgsort(x Series) []int {
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) bool {
		return x[a] < x[b]
	})

	return order
}

func permute(s Series, order []int) Series {
	out := make(Series, len(order))
	for i, idx := range order {
		out[i] = s[idx]
	}
	return out
}

func validateGroup(groupIndex int, g SeriesGroup) error {
	if len(g.Ys) == 0 {
		return &InputError{
			Op:     "align",
			Series: groupIndex,
			Index:  -1,
			Err:    fmt.Errorf("group has no y-series: %w", ErrLengthMismatch),
		}
	}

	for i, v := range g.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InputError{Op: "align", Series: groupIndex, Index: i, Err: ErrInvalidX}
		}
	}

	for j, y := range g.Ys {
		if len(y) != len(g.X) {
			return &InputError{
				Op:     "align",
				Series: groupIndex,
				Index:  -1,
				Err:    fmt.Errorf("y-series %d has %d values, x has %d: %w", j, len(y), len(g.X), ErrLengthMismatch),
			}
		}
	}

	return nil
}

// GroupsFromColumns splits columns laid out as [x1, y1, x2, y2, ...] into
// groups. A group may end in a run of rows where both x and y are missing;
// that run is the padding of a ragged table and is trimmed. A missing x
// anywhere else is an ErrInvalidX.
func GroupsFromColumns(columns []Series) ([]SeriesGroup, error) {
	if len(columns) == 0 {
		return nil, &InputError{Op: "groups", Series: -1, Index: -1, Err: ErrNoData}
	}
	if len(columns)%2 != 0 {
		return nil, &InputError{
			Op:     "groups",
			Series: -1,
			Index:  -1,
			Err:    fmt.Errorf("expected x/y column pairs, got %d columns: %w", len(columns), ErrLengthMismatch),
		}
	}

	groups := make([]SeriesGroup, 0, len(columns)/2)
	for i := 0; i < len(columns); i += 2 {
		x, y := columns[i], columns[i+1]
		if len(x) != len(y) {
			return nil, &InputError{
				Op:     "groups",
				Series: i / 2,
				Index:  -1,
				Err:    fmt.Errorf("x has %d values, y has %d: %w", len(x), len(y), ErrLengthMismatch),
			}
		}

		end := len(x)
		for end > 0 && IsMissing(x[end-1]) && IsMissing(y[end-1]) {
			end--
		}

		for k := 0; k < end; k++ {
			if math.IsNaN(x[k]) || math.IsInf(x[k], 0) {
				return nil, &InputError{Op: "groups", Series: i / 2, Index: k, Err: ErrInvalidX}
			}
		}

		g := SeriesGroup{X: x[:end].Clone(), Ys: []Series{y[:end].Clone()}}
		groups = append(groups, g)
	}

	return groups, nil
}
