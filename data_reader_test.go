package nbplot

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

// errReader simulates an io.Reader that returns an error on Read.
type errReader struct{ err error }

func (e *errReader) Read(p []byte) (int, error) { return 0, e.err }

// sliceReader is a StringReader over fixed rows, optionally failing at the end.
type sliceReader struct {
	rows [][]string
	err  error
}

func (r *sliceReader) Read(ctx context.Context) ([]string, error) {
	if len(r.rows) == 0 {
		if r.err != nil {
			return nil, r.err
		}
		return nil, io.EOF
	}
	row := r.rows[0]
	r.rows = r.rows[1:]
	return row, nil
}

func TestCsvStringReader(t *testing.T) {
	t.Run("Read_SuccessAndCount", func(t *testing.T) {
		ctx := context.Background()
		r := NewCsvStringReader(strings.NewReader("1,2,3\n4,5,6\n"))
		line, err := r.Read(ctx)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		want := []string{"1", "2", "3"}
		if !reflect.DeepEqual(line, want) {
			t.Fatalf("unexpected fields: got %v want %v", line, want)
		}

		line2, err := r.Read(ctx)
		if err != nil {
			t.Fatalf("expected nil error on second read, got %v", err)
		}
		want2 := []string{"4", "5", "6"}
		if !reflect.DeepEqual(line2, want2) {
			t.Fatalf("unexpected fields on second line: got %v want %v", line2, want2)
		}

		_, err = r.Read(ctx)
		if err != io.EOF {
			t.Fatalf("expected io.EOF after reads, got %v", err)
		}
		if r.lineCount != 2 {
			t.Fatalf("lineCount = %d, want 2", r.lineCount)
		}
	})

	t.Run("Read_RaggedRowsAndComments", func(t *testing.T) {
		ctx := context.Background()
		r := NewCsvStringReader(strings.NewReader("# comment\n1,2,3,4\n5,6\n"))
		got, err := r.Read(ctx)
		if err != nil || !reflect.DeepEqual(got, []string{"1", "2", "3", "4"}) {
			t.Fatalf("got %v, %v", got, err)
		}
		got, err = r.Read(ctx)
		if err != nil || !reflect.DeepEqual(got, []string{"5", "6"}) {
			t.Fatalf("got %v, %v", got, err)
		}
	})

	t.Run("Read_EOF", func(t *testing.T) {
		r := NewCsvStringReader(strings.NewReader(""))
		_, err := r.Read(context.Background())
		if err != io.EOF {
			t.Fatalf("expected io.EOF, got %v", err)
		}
	})

	t.Run("Read_ParseError_Ignored", func(t *testing.T) {
		// malformed CSV with unmatched quote should produce a csv.ParseError
		r := NewCsvStringReader(strings.NewReader("a,\"b"))
		_, err := r.Read(context.Background())
		if err != errIgnoreThisRow {
			t.Fatalf("expected errIgnoreThisRow, got %v", err)
		}
	})

	t.Run("Read_UnderlyingError", func(t *testing.T) {
		underlying := errors.New("boom")
		r := NewCsvStringReader(&errReader{err: underlying})
		_, err := r.Read(context.Background())
		if !errors.Is(err, underlying) {
			t.Fatalf("expected underlying error %v, got %v", underlying, err)
		}
	})

	t.Run("Read_CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := NewCsvStringReader(strings.NewReader("1,2\n"))
		_, err := r.Read(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestRelaxedStringReader(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"Spaces", "1 2 3\n4 5 6\n", [][]string{{"1", "2", "3"}, {"4", "5", "6"}}},
		{"Tabs", "1\t2\t3\n7\t8\t9\n", [][]string{{"1", "2", "3"}, {"7", "8", "9"}}},
		{"MultipleSpacesAndTabs", "1  \t\t  2    3\n10\t\t20   30\n", [][]string{{"1", "2", "3"}, {"10", "20", "30"}}},
		{"Commas", "1,2,3\n", [][]string{{"1", "2", "3"}}},
		{"MixedSeparators", "1, 2\t3\n", [][]string{{"1", "2", "3"}}},
		{"LeadingAndTrailingSpace", "  1 2  \n", [][]string{{"1", "2"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			r := NewRelaxedStringReader(strings.NewReader(tc.input))
			for i, want := range tc.want {
				got, err := r.Read(ctx)
				if err != nil {
					t.Fatalf("unexpected error on line %d: %v", i, err)
				}
				if !reflect.DeepEqual(got, want) {
					t.Fatalf("unexpected split on line %d: got %v want %v", i, got, want)
				}
			}

			_, err := r.Read(ctx)
			if err != io.EOF {
				t.Fatalf("expected io.EOF after reads, got %v", err)
			}
		})
	}

	t.Run("BlankAndCommentLinesIgnored", func(t *testing.T) {
		ctx := context.Background()
		r := NewRelaxedStringReader(strings.NewReader("\n# x y\n1 2\n"))
		for i := 0; i < 2; i++ {
			if _, err := r.Read(ctx); err != errIgnoreThisRow {
				t.Fatalf("line %d: expected errIgnoreThisRow, got %v", i, err)
			}
		}
		got, err := r.Read(ctx)
		if err != nil || !reflect.DeepEqual(got, []string{"1", "2"}) {
			t.Fatalf("got %v, %v", got, err)
		}
	})

	t.Run("UnderlyingError", func(t *testing.T) {
		underlying := errors.New("boom")
		r := NewRelaxedStringReader(&errReader{err: underlying})
		_, err := r.Read(context.Background())
		if !errors.Is(err, underlying) {
			t.Fatalf("expected underlying error %v, got %v", underlying, err)
		}
	})
}

func TestReadTable(t *testing.T) {
	m := Missing()

	t.Run("Header", func(t *testing.T) {
		table, err := ReadTable(context.Background(), NewRelaxedStringReader(strings.NewReader(
			"time temp humidity\n1 20 50\n2 21 55\n",
		)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !reflect.DeepEqual(table.Header, []string{"time", "temp", "humidity"}) {
			t.Fatalf("unexpected header %v", table.Header)
		}
		if len(table.Columns) != 3 {
			t.Fatalf("got %d columns, want 3", len(table.Columns))
		}
		assertSeries(t, "x", table.Columns[0], Series{1, 2})
		assertSeries(t, "temp", table.Columns[1], Series{20, 21})
		assertSeries(t, "humidity", table.Columns[2], Series{50, 55})
	})

	t.Run("NoHeader", func(t *testing.T) {
		table, err := ReadTable(context.Background(), NewCsvStringReader(strings.NewReader("1,2\n3,4\n")))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Header != nil {
			t.Fatalf("expected no header, got %v", table.Header)
		}
		assertSeries(t, "x", table.Columns[0], Series{1, 3})
		assertSeries(t, "y", table.Columns[1], Series{2, 4})
	})

	t.Run("MissingCells", func(t *testing.T) {
		table, err := ReadTable(context.Background(), NewCsvStringReader(strings.NewReader(
			"1,10,,NaN\n2,null,5\n3\n",
		)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertSeries(t, "x", table.Columns[0], Series{1, 2, 3})
		assertSeries(t, "y1", table.Columns[1], Series{10, m, m})
		assertSeries(t, "y2", table.Columns[2], Series{m, 5, m})
		assertSeries(t, "y3", table.Columns[3], Series{m, m, m})
	})

	t.Run("BadRowsIgnored", func(t *testing.T) {
		table, err := ReadTable(context.Background(), &sliceReader{rows: [][]string{
			{"1", "2"},
			{"a", "3"},
			{"4", "5", "6"},
			{"7", "8"},
		}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertSeries(t, "x", table.Columns[0], Series{1, 7})
		assertSeries(t, "y", table.Columns[1], Series{2, 8})
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ReadTable(context.Background(), NewRelaxedStringReader(strings.NewReader("")))
		if !errors.Is(err, ErrNoData) {
			t.Fatalf("expected ErrNoData, got %v", err)
		}
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		_, err := ReadTable(context.Background(), NewRelaxedStringReader(strings.NewReader("x y\n")))
		if !errors.Is(err, ErrNoData) {
			t.Fatalf("expected ErrNoData, got %v", err)
		}
	})

	t.Run("InputErrorPropagation", func(t *testing.T) {
		underlying := errors.New("boom")
		_, err := ReadTable(context.Background(), &sliceReader{rows: [][]string{{"1", "2"}}, err: underlying})
		if !errors.Is(err, underlying) {
			t.Fatalf("expected %v, got %v", underlying, err)
		}
	})
}

func TestTableYLabels(t *testing.T) {
	table := Table{Header: []string{"x1", "a", "x2", "b"}}

	if got := table.YLabels(false); !reflect.DeepEqual(got, []string{"a", "x2", "b"}) {
		t.Fatalf("YLabels(false) = %v", got)
	}
	if got := table.YLabels(true); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("YLabels(true) = %v", got)
	}
	if got := (Table{}).YLabels(false); len(got) != 0 {
		t.Fatalf("YLabels without header = %v", got)
	}
}
