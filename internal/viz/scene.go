package viz

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sphpost/internal/particles"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera orbits the origin at a fixed distance.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

// NewCamera looks at the scene slightly from above.
func NewCamera() *Camera {
	return &Camera{Distance: 6, RotX: -0.5, RotY: 0.6, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(20, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.05, c.Zoom/1.2) }

// RotatePoint applies the pitch then the yaw of the camera.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project maps p onto a w x h dot grid. The last value is false when the
// point falls behind the camera or off the grid.
func (c *Camera) Project(p Vec3, w, h int) (int, int, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	unit := math.Min(float64(w), float64(h)) / 2.5
	sx := int(math.Round(rot.X*persp*unit)) + w/2
	sy := int(math.Round(-rot.Y*persp*unit)) + h/2
	return sx, sy, sx >= 0 && sx < w && sy >= 0 && sy < h
}

// Scene is a point cloud normalised to fit the unit sphere.
type Scene struct {
	Points []Vec3
	Center Vec3
	Radius float64
}

// NewScene gathers the positions of the particles in idx, centres them on
// their mean and scales them so the farthest point sits at distance 1.
func NewScene(pos particles.Vec3Field, idx []int) *Scene {
	s := &Scene{Points: make([]Vec3, 0, len(idx))}
	if len(idx) == 0 {
		return s
	}
	xs := particles.Gather(pos.X, idx)
	ys := particles.Gather(pos.Y, idx)
	zs := particles.Gather(pos.Z, idx)
	s.Center = Vec3{stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil)}

	for i := range xs {
		p := Vec3{xs[i], ys[i], zs[i]}.Sub(s.Center)
		if l := p.Length(); l > s.Radius {
			s.Radius = l
		}
		s.Points = append(s.Points, p)
	}
	if s.Radius > 0 {
		for i := range s.Points {
			s.Points[i] = s.Points[i].Scale(1 / s.Radius)
		}
	}
	return s
}

// Render clears c and draws the scene through cam. With axes set it also
// draws the x, y and z unit axes from the scene centre.
func Render(c *Canvas, s *Scene, cam *Camera, axes bool) int {
	c.Clear()
	w, h := c.DotsWide(), c.DotsHigh()
	if axes {
		o := Vec3{}
		for _, end := range []Vec3{{X: 0.5}, {Y: 0.5}, {Z: 0.5}} {
			x0, y0, ok0 := cam.Project(o, w, h)
			x1, y1, ok1 := cam.Project(end, w, h)
			if ok0 || ok1 {
				c.DrawLine(x0, y0, x1, y1)
			}
		}
	}
	visible := 0
	for _, p := range s.Points {
		if x, y, ok := cam.Project(p, w, h); ok {
			c.Set(x, y)
			visible++
		}
	}
	return visible
}
