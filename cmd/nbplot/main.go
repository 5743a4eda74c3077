package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"github.com/cactusdynamics/nbplot"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

type cliOptions struct {
	Input  string `short:"i" long:"input" description:"file to read the table from, - for stdin" default:"-"`
	Output string `short:"o" long:"output" description:"file to write the chart to, - for stdout" default:"-"`
	CSV    bool   `long:"csv" description:"parse the input as strict CSV instead of splitting on commas and whitespace"`

	Title     string   `short:"t" long:"title" description:"chart title"`
	Width     int      `long:"width" description:"chart width in pixels (default 750)"`
	Height    int      `long:"height" description:"chart height in pixels (default 300)"`
	Size      int      `long:"size" description:"point size (default 2)"`
	Scatter   bool     `long:"scatter" description:"draw points only"`
	MultiXY   bool     `long:"multixy" description:"columns are x1,y1,x2,y2,... pairs with independent x values"`
	Labels    []string `short:"l" long:"label" description:"label for the next y column, can be repeated; overrides the header row"`
	HTML      bool     `long:"html" description:"write the chart markup instead of an iframe"`
	OptionsIn string   `long:"options" description:"YAML file with chart options; flags take precedence"`

	Serve     string `long:"serve" description:"serve the chart on host:port instead of writing it"`
	NoBrowser bool   `long:"no-browser" description:"with --serve, do not open a web browser"`

	Verbose bool `short:"v" long:"verbose" description:"log debug output to stderr"`
}

func (c cliOptions) chartOptions() nbplot.Options {
	return nbplot.Options{
		Title:     c.Title,
		Width:     c.Width,
		Height:    c.Height,
		PointSize: c.Size,
		Scatter:   c.Scatter,
	}
}

func (c cliOptions) format() nbplot.Format {
	if c.HTML {
		return nbplot.FormatHTML
	}
	return nbplot.FormatFrame
}

func parseArgs(args []string) (cliOptions, bool, error) {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "nbplot"
	parser.Usage = "[OPTIONS] < table.txt > chart.html"

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			return opts, true, nil
		}
		return opts, false, err
	}

	return opts, false, nil
}

func readTable(ctx context.Context, opts cliOptions, stdin io.Reader) (nbplot.Table, error) {
	input := stdin
	if opts.Input != "-" {
		f, err := os.Open(opts.Input)
		if err != nil {
			return nbplot.Table{}, err
		}
		defer f.Close()
		input = f
	}

	var reader nbplot.StringReader
	if opts.CSV {
		reader = nbplot.NewCsvStringReader(input)
	} else {
		reader = nbplot.NewRelaxedStringReader(input)
	}

	return nbplot.ReadTable(ctx, reader)
}

func buildChart(opts cliOptions, table nbplot.Table) (nbplot.Chart, error) {
	chartOpts := nbplot.Options{}
	if opts.OptionsIn != "" {
		fileOpts, err := nbplot.LoadOptionsFile(opts.OptionsIn)
		if err != nil {
			return nbplot.Chart{}, err
		}
		chartOpts = fileOpts
	}
	chartOpts = chartOpts.Merge(opts.chartOptions())

	labels := opts.Labels
	if len(labels) == 0 {
		labels = table.YLabels(opts.MultiXY)
	}

	if opts.MultiXY {
		return nbplot.NewMultiXYChart(table.Columns, labels, chartOpts)
	}
	return nbplot.NewChart(table.Columns, labels, chartOpts)
}

func writeOutput(path string, stdout io.Writer, out string) error {
	if path == "-" {
		_, err := io.WriteString(stdout, out)
		return err
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

func serve(opts cliOptions, chart nbplot.Chart) error {
	host, portStr, err := net.SplitHostPort(opts.Serve)
	if err != nil {
		return fmt.Errorf("invalid --serve address %q: %w", opts.Serve, err)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid --serve port %q: %w", portStr, err)
	}

	server, err := nbplot.NewHttpServer(chart, host, uint16(port))
	if err != nil {
		return err
	}
	return server.Run(!opts.NoBrowser)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, helped, err := parseArgs(args)
	if err != nil || helped {
		return err
	}

	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	table, err := readTable(ctx, opts, stdin)
	if err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}

	chart, err := buildChart(opts, table)
	if err != nil {
		return err
	}

	if opts.Serve != "" {
		return serve(opts, chart)
	}

	out, err := chart.Render(opts.format())
	if err != nil {
		return err
	}

	return writeOutput(opts.Output, stdout, out)
}

func main() {
	logrus.SetOutput(os.Stderr)

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logrus.WithError(err).Error("nbplot failed")
		os.Exit(1)
	}
}
