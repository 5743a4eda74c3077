package nbplot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

const (
	UplotStylesheetURL = "https://leeoniya.github.io/uPlot/dist/uPlot.min.css"
	UplotScriptURL     = "https://leeoniya.github.io/uPlot/dist/uPlot.iife.js"

	FrameWidth  = 800
	FrameHeight = 400
)

// Format selects what Render returns.
type Format int

const (
	// An <iframe srcdoc=...> wrapping the chart markup, ready to be displayed
	// inline in a notebook.
	FormatFrame Format = iota
	// The chart markup itself.
	FormatHTML
)

func (f Format) String() string {
	switch f {
	case FormatFrame:
		return "frame"
	case FormatHTML:
		return "html"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var chartTemplate = template.Must(template.New("chart").Parse(`
<link rel="stylesheet" href="{{.StylesheetURL}}">
<script src="{{.ScriptURL}}"></script>

<div id="plot"></div>

<script>
data = {{.Data}}
options = {{.Options}};

if (typeof options.scatter == 'undefined') {
    options.scatter = false
}
if (options.scatter) {
    for (i=1; i<data.length; i++) {
        options['series'][i]['paths'] = u => null;
    }
}
u2 = new uPlot(options, data, document.getElementById('plot'))
</script>
`))

var frameTemplate = template.Must(template.New("frame").Parse(
	`<iframe srcdoc="{{.Source}}" src="" width={{.Width}} height="{{.Height}}" frameborder="0" sandbox="allow-scripts"></iframe>`,
))

// Chart is an aligned dataset together with the uPlot options describing
// how to draw it.
type Chart struct {
	Data    AlignedDataset
	Options ChartOptions
}

// HTML renders the chart markup. It references uPlot by URL, so it only
// draws where those URLs are reachable.
//
// The returned markup contains no double quotes: they are all turned into
// single quotes so it can be placed inside a double-quoted attribute.
func (c Chart) HTML() (string, error) {
	data, err := inlineJSON(c.Data)
	if err != nil {
		return "", fmt.Errorf("failed to encode chart data: %w", err)
	}

	options, err := inlineJSON(c.Options)
	if err != nil {
		return "", fmt.Errorf("failed to encode chart options: %w", err)
	}

	var buf bytes.Buffer
	err = chartTemplate.Execute(&buf, struct {
		StylesheetURL string
		ScriptURL     string
		Data          string
		Options       string
	}{
		StylesheetURL: UplotStylesheetURL,
		ScriptURL:     UplotScriptURL,
		Data:          data,
		Options:       options,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render chart template: %w", err)
	}

	return strings.ReplaceAll(buf.String(), `"`, "'"), nil
}

// Frame renders the chart markup inside a sandboxed iframe.
func (c Chart) Frame() (string, error) {
	source, err := c.HTML()
	if err != nil {
		return "", err
	}
	return WrapFrame(source)
}

func (c Chart) Render(format Format) (string, error) {
	switch format {
	case FormatFrame:
		return c.Frame()
	case FormatHTML:
		return c.HTML()
	default:
		return "", fmt.Errorf("unknown output format %v", format)
	}
}

// WrapFrame places markup produced by Chart.HTML into a fixed size
// sandboxed iframe. The markup must not contain double quotes.
func WrapFrame(source string) (string, error) {
	if strings.Contains(source, `"`) {
		return "", fmt.Errorf("frame source contains a double quote")
	}

	var buf bytes.Buffer
	err := frameTemplate.Execute(&buf, struct {
		Source string
		Width  int
		Height int
	}{
		Source: source,
		Width:  FrameWidth,
		Height: FrameHeight,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render frame template: %w", err)
	}
	return buf.String(), nil
}

// Encodes v as JSON that survives having every double quote replaced with a
// single quote: quotes and apostrophes inside JSON strings are written as
// \u escapes so the only remaining quote characters are string delimiters.
// encoding/json already escapes <, > and &.
func inlineJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(raw))

	inString := false
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		switch {
		case !inString:
			if b == '"' {
				inString = true
			}
			out.WriteByte(b)
		case b == '\\':
			next := raw[i+1] // a backslash is never the last byte of valid JSON
			if next == '"' {
				out.WriteString(`\u0022`)
			} else {
				out.WriteByte(b)
				out.WriteByte(next)
			}
			i++
		case b == '\'':
			out.WriteString(`\u0027`)
		case b == '"':
			inString = false
			out.WriteByte(b)
		default:
			out.WriteByte(b)
		}
	}

	return out.String(), nil
}
