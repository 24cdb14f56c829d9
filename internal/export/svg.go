package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/cortexforge/internal/rcd"
	"github.com/san-kum/cortexforge/internal/viz"
)

type screenPoint struct {
	x, y  int
	valid bool
}

// WriteSVG projects the phase trajectory through cam and writes one
// stroked line per segment, colored along the Viridis scale. Samples that
// are non-finite or behind the camera break the path; the viewer clips the
// rest.
func WriteSVG(w io.Writer, tr rcd.Trajectory, cam *viz.Camera, width, height int) error {
	if cam == nil {
		cam = viz.NewCamera()
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke-width="1.5" stroke-linecap="round">
`, width, height, width, height)

	b, ok := viz.TrajectoryBounds(tr)
	if ok {
		pts := make([]screenPoint, tr.Len())
		for i := range pts {
			p := tr.At(i)
			if !p.Finite() {
				continue
			}
			v := b.Normalize(p)
			if !cam.InFront(v) {
				continue
			}
			x, y, _, _ := cam.Project(v, width, height)
			pts[i] = screenPoint{x, y, true}
		}
		for i := 1; i < len(pts); i++ {
			a, c := pts[i-1], pts[i]
			if !a.valid || !c.valid {
				continue
			}
			fmt.Fprintf(bw, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>
`, a.x, a.y, c.x, c.y, viz.Viridis(tr.Gradient(i)))
		}
	}

	fmt.Fprint(bw, "</g>\n</svg>\n")
	return bw.Flush()
}
