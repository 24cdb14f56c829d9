package viz

import (
	"math"
	"sort"

	"github.com/san-kum/cortexforge/internal/rcd"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera rotates points about the origin and projects them with a
// perspective divide onto a 2D screen.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, RotX: -0.35, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint applies the X, then Y, then Z rotation.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// InFront reports whether p lies beyond the near plane.
func (c *Camera) InFront(p Vec3) bool {
	return c.RotatePoint(p).Scale(c.Zoom).Z < c.Distance-c.Near
}

// Project converts world coordinates to screen coordinates in a sw x sh
// space. It returns x, y, depth and whether the point lands on screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	if !c.InFront(p) {
		return 0, 0, 0, false
	}
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
	Color      string
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                   { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, c string) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) AddPoint(p Vec3, c string)   { w.Edges = append(w.Edges, Edge{p, p, c}) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          string
}

// Render3D draws the wireframe onto the canvas farthest edge first, so
// nearer edges own the color of shared cells.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		if !cam.InFront(e.Start) || !cam.InFront(e.End) {
			continue
		}
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.color)
	}
}

const axisColor = "#555577"

// Bounds is the per-variable range used to normalize a trajectory.
type Bounds struct {
	Min, Max rcd.Point
}

// TrajectoryBounds returns the range of the finite samples. ok is false
// when no sample is finite.
func TrajectoryBounds(tr rcd.Trajectory) (b Bounds, ok bool) {
	for i := 0; i < tr.Len(); i++ {
		p := tr.At(i)
		if !p.Finite() {
			continue
		}
		if !ok {
			b.Min, b.Max, ok = p, p, true
			continue
		}
		b.Min.H, b.Max.H = math.Min(b.Min.H, p.H), math.Max(b.Max.H, p.H)
		b.Min.M, b.Max.M = math.Min(b.Min.M, p.M), math.Max(b.Max.M, p.M)
		b.Min.R, b.Max.R = math.Min(b.Min.R, p.R), math.Max(b.Max.R, p.R)
	}
	return b, ok
}

// Normalize maps p into the [-1, 1] cube: H on X, R on Y (up) and M on Z.
// A degenerate axis maps to 0.
func (b Bounds) Normalize(p rcd.Point) Vec3 {
	return Vec3{
		X: normAxis(p.H, b.Min.H, b.Max.H),
		Y: normAxis(p.R, b.Min.R, b.Max.R),
		Z: normAxis(p.M, b.Min.M, b.Max.M),
	}
}

func normAxis(v, lo, hi float64) float64 {
	if hi-lo == 0 {
		return 0
	}
	return 2*(v-lo)/(hi-lo) - 1
}

// PhaseWireframe builds the symbolic phase trajectory: one edge per pair
// of consecutive finite samples, colored along the Viridis scale by index,
// plus the three axes through the cube's back corner. Non-finite samples
// break the path.
func PhaseWireframe(tr rcd.Trajectory) *Wireframe {
	w := NewWireframe()
	b, ok := TrajectoryBounds(tr)
	if !ok {
		return w
	}

	o := Vec3{-1, -1, -1}
	w.AddEdge(o, Vec3{1, -1, -1}, axisColor)
	w.AddEdge(o, Vec3{-1, 1, -1}, axisColor)
	w.AddEdge(o, Vec3{-1, -1, 1}, axisColor)

	for i := 0; i < tr.Len(); i++ {
		p := tr.At(i)
		if !p.Finite() {
			continue
		}
		cur := b.Normalize(p)
		color := Viridis(tr.Gradient(i))
		if i > 0 && tr.At(i-1).Finite() {
			w.AddEdge(b.Normalize(tr.At(i-1)), cur, color)
		} else {
			w.AddPoint(cur, color)
		}
	}
	return w
}
