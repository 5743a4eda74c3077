package nbplot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadOptionsFile reads Options from a YAML file such as
//
//	title: Latency
//	width: 900
//	pointSize: 4
//	scales:
//	  x: {time: true}
//	  y: {range: [0, 100]}
//
// Unknown keys are ignored.
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to open options file: %w", err)
	}
	defer f.Close()

	opts, err := DecodeOptions(f)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"tag":  "Config",
		"path": path,
	}).Debug("loaded options file")

	return opts, nil
}

func DecodeOptions(r io.Reader) (Options, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read options: %w", err)
	}

	var opts Options
	if len(bytes.TrimSpace(raw)) == 0 {
		return opts, nil
	}

	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to decode options: %w", err)
	}

	if opts.Width < 0 || opts.Height < 0 || opts.PointSize < 0 {
		return Options{}, fmt.Errorf("width, height and pointSize must not be negative")
	}

	return opts, nil
}
