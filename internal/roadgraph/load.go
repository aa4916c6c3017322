package roadgraph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format names a graph file encoding.
type Format string

// Supported graph file formats.
const (
	FormatAuto    Format = "auto"
	FormatGraphML Format = "graphml"
	FormatOSM     Format = "osm"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatGraphML, FormatOSM:
		return f, nil
	default:
		return "", fmt.Errorf("unknown graph format %q (want auto, graphml or osm)", s)
	}
}

// DetectFormat guesses the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".graphml", ".xml":
		return FormatGraphML, nil
	case ".osm":
		return FormatOSM, nil
	default:
		return "", fmt.Errorf("cannot detect graph format of %q; set it explicitly", path)
	}
}

// LoadFile opens path and decodes it with the given format.
func LoadFile(ctx context.Context, path string, format Format, opts ...Option) (*Graph, error) {
	if format == FormatAuto || format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration.
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()

	opts = append([]Option{WithSource(filepath.Base(path))}, opts...)

	var g *Graph

	switch format {
	case FormatGraphML:
		g, err = LoadGraphML(f, opts...)
	case FormatOSM:
		g, err = LoadOSM(ctx, f, opts...)
	default:
		return nil, fmt.Errorf("unsupported graph format %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return g, nil
}
