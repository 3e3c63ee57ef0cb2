// Package render turns meshes and a camera into an ordered list of shaded
// screen-space triangles and draws them on a Surface.
//
// Every frame is rebuilt from its inputs. There is no depth buffer: visible
// triangles are sorted far to near and painted in that order, which is wrong
// for interpenetrating geometry. Triangles with a vertex behind the camera are
// dropped rather than clipped against the near plane.
package render

import (
	"image/color"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/pkg/camera"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

// Options configures a Renderer.
type Options struct {
	Palette   Palette
	Light     math.Vec3 // Direction toward the light; normalized by New
	Ambient   float32
	EdgeWidth float32

	ShowGrid      bool
	GridSize      float32
	GridDivisions int

	ShowAxes   bool
	AxisLength float32

	Logger *zap.Logger
}

// DefaultOptions returns the stock viewport settings.
func DefaultOptions() Options {
	return Options{
		Palette:       DefaultPalette(),
		Light:         LightDirection(30, 50),
		Ambient:       DefaultAmbient,
		EdgeWidth:     1,
		ShowGrid:      true,
		GridSize:      10,
		GridDivisions: 10,
		ShowAxes:      true,
		AxisLength:    1,
	}
}

// Renderer runs the transform, cull, light, sort and draw stages.
// It holds only configuration and is safe for concurrent use.
type Renderer struct {
	opts Options
	log  *zap.Logger
}

// New creates a renderer.
func New(opts Options) *Renderer {
	opts.Light = opts.Light.Normalize()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{opts: opts, log: log}
}

// Options returns the renderer configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// Triangle is a projected, lit triangle ready to draw.
type Triangle struct {
	MeshID string
	Index  int // Triangle index within its mesh

	Points [3]math.Vec2
	Depth  float32 // Mean NDC z of the corners; larger is farther
	Fill   color.RGBA
	Edge   color.RGBA
}

// Line is a projected overlay segment.
type Line struct {
	From, To math.Vec2
	Color    color.RGBA
}

// Stats counts what happened to the triangles of one frame.
type Stats struct {
	Meshes       int
	Triangles    int
	Degenerate   int
	BackFacing   int
	BehindCamera int
	Visible      int
}

// Frame is the output of Build: triangles in draw order plus overlays.
type Frame struct {
	Size           Size
	ViewProjection math.Mat4
	Triangles      []Triangle
	Grid           []Line
	Axes           []Line
	Stats          Stats
}

// Build runs the pipeline without drawing. It never fails: an invalid camera
// or viewport yields an empty frame, and triangles that cannot be drawn are
// counted in Stats and skipped.
func (r *Renderer) Build(size Size, meshes []*mesh.Mesh, cam *camera.Camera, sel Selection) Frame {
	frame := Frame{Size: size}
	if cam == nil || !size.Valid() {
		r.log.Warn("skipping frame", zap.Bool("camera", cam != nil), zap.Float32("width", size.Width), zap.Float32("height", size.Height))
		return frame
	}
	if err := cam.Validate(); err != nil {
		r.log.Warn("skipping frame", zap.Error(err))
		return frame
	}
	vp, err := cam.ViewProjection(size.Aspect())
	if err != nil {
		r.log.Warn("skipping frame", zap.Error(err))
		return frame
	}
	frame.ViewProjection = vp

	for _, m := range meshes {
		if m == nil {
			continue
		}
		frame.Stats.Meshes++
		frame.Triangles = r.appendMesh(frame.Triangles, &frame.Stats, m, cam.Position, vp, size, sel)
	}
	sortByDepth(frame.Triangles)

	if r.opts.ShowGrid {
		frame.Grid = groundGrid(vp, size, r.opts.GridSize, r.opts.GridDivisions, r.opts.Palette.Grid)
	}
	if r.opts.ShowAxes {
		frame.Axes = axes(vp, size, r.opts.AxisLength, r.opts.Palette)
	}

	r.log.Debug("frame built",
		zap.Int("meshes", frame.Stats.Meshes),
		zap.Int("triangles", frame.Stats.Triangles),
		zap.Int("visible", frame.Stats.Visible),
		zap.Int("degenerate", frame.Stats.Degenerate),
		zap.Int("backFacing", frame.Stats.BackFacing),
		zap.Int("behindCamera", frame.Stats.BehindCamera),
	)
	return frame
}

// appendMesh transforms, culls and lights the triangles of one mesh.
func (r *Renderer) appendMesh(out []Triangle, stats *Stats, m *mesh.Mesh, eye math.Vec3, vp math.Mat4, size Size, sel Selection) []Triangle {
	base, edge := r.opts.Palette.colors(m.ID(), sel)

	for t := 0; t < m.TriangleCount(); t++ {
		stats.Triangles++
		v0, v1, v2 := m.TriangleVertices(t)

		normal, ok := mesh.FaceNormal(v0, v1, v2)
		if !ok {
			stats.Degenerate++
			continue
		}

		centroid := v0.Add(v1).Add(v2).Scale(1.0 / 3)
		if normal.Dot(eye.Sub(centroid)) < 0 {
			stats.BackFacing++
			continue
		}

		var tri Triangle
		visible := true
		for i, v := range [3]math.Vec3{v0, v1, v2} {
			p, depth, ok := project(vp, size, v)
			if !ok {
				visible = false
				break
			}
			tri.Points[i] = p
			tri.Depth += depth
		}
		if !visible {
			stats.BehindCamera++
			continue
		}
		tri.Depth /= 3
		if !finiteScreen(tri) {
			stats.Degenerate++
			continue
		}

		tri.MeshID = m.ID()
		tri.Index = t
		tri.Fill = Shade(base, Intensity(normal, r.opts.Light, r.opts.Ambient))
		tri.Edge = edge
		out = append(out, tri)
		stats.Visible++
	}
	return out
}

// project maps a world point to screen pixels. ok is false when the point is
// behind the camera (clip w <= 0).
func project(vp math.Mat4, size Size, v math.Vec3) (p math.Vec2, depth float32, ok bool) {
	clip := vp.MulVec4(v.Vec4(1))
	if clip.W() <= 0 {
		return math.Vec2{}, 0, false
	}
	ndc := clip.PerspectiveDivide()
	return math.Vec2{
		X: (ndc.X + 1) * size.Width / 2,
		Y: (1 - ndc.Y) * size.Height / 2,
	}, ndc.Z, true
}

// finiteScreen reports whether every corner and the depth key are finite, so
// the triangle can be drawn and ordered.
func finiteScreen(tri Triangle) bool {
	for _, p := range tri.Points {
		if !(math.Vec3{X: p.X, Y: p.Y, Z: tri.Depth}).IsFinite() {
			return false
		}
	}
	return true
}

// sortByDepth orders triangles far to near. Equal depths keep input order.
func sortByDepth(tris []Triangle) {
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].Depth > tris[j].Depth
	})
}
