// Package export writes trajectories as CSV, JSON or SVG.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/cortexforge/internal/rcd"
	"github.com/san-kum/cortexforge/internal/viz"
)

var ErrUnknownFormat = errors.New("export: unknown format")

var Formats = []string{"csv", "json", "svg"}

// Options carries the SVG view; CSV and JSON ignore it.
type Options struct {
	Camera        *viz.Camera
	Width, Height int
}

// Write dispatches on format.
func Write(w io.Writer, format string, cfg rcd.Config, tr rcd.Trajectory, opts Options) error {
	switch strings.ToLower(format) {
	case "csv":
		return WriteCSV(w, tr)
	case "json":
		return WriteJSON(w, cfg, tr)
	case "svg":
		if opts.Width <= 0 {
			opts.Width = 800
		}
		if opts.Height <= 0 {
			opts.Height = 600
		}
		return WriteSVG(w, tr, opts.Camera, opts.Width, opts.Height)
	}
	return fmt.Errorf("%w: %q (available: %v)", ErrUnknownFormat, format, Formats)
}
