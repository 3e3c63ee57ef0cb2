// meshtool renders primitive mesh scenes to PNG and exports them to STL, OBJ
// and PLY files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/config"
	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/pkg/camera"
	"github.com/Faultbox/meshkit/pkg/export"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/mesh"
	"github.com/Faultbox/meshkit/pkg/picking"
	"github.com/Faultbox/meshkit/pkg/raster"
	"github.com/Faultbox/meshkit/pkg/render"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "render":
		err = cmdRender(args)
	case "export":
		err = cmdExport(args)
	case "export-all":
		err = cmdExportAll(args)
	case "info":
		err = cmdInfo(args)
	case "pick":
		err = cmdPick(args)
	case "formats":
		cmdFormats()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync()
}

func printUsage() {
	fmt.Println(`meshtool - mesh viewport renderer and exporter

Usage:
  meshtool <command> [options]

Commands:
  render [options] <out.png>      Render the scene to a PNG image
  export [options] [out]          Export the scene merged into one file
  export-all [options] [dir]      Export each scene mesh to its own file
  info [options]                  Show scene meshes and frame statistics
  pick [options] <x> <y>          Print the mesh under a pixel
  formats                         List export formats

Common options:
  -config <file>   Config file (default ./meshkit.yaml, ./config.yaml or user config dir)
  -debug           Enable debug logging
  -width, -height  Viewport size
  -mode            wireframe, solid or solid-with-edges
  -format          stl, stl-ascii, obj or ply
  -out             Output directory for exports

Examples:
  meshtool render -mode wireframe scene.png
  meshtool render -select cube -hover-at 640,360 scene.png
  meshtool export -format obj scene
  meshtool export-all -format ply -out ./meshes
  meshtool pick 640 360`)
}

// scene is the loaded config with its built meshes and camera.
type scene struct {
	cfg    *config.Config
	meshes []*mesh.Mesh
	cam    *camera.Camera
	log    *zap.Logger
}

// loadScene parses the shared flags on fs, loads config, starts logging and
// builds the scene.
func loadScene(fs *flag.FlagSet, args []string) (*scene, error) {
	config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging); err != nil {
		return nil, err
	}

	meshes, err := cfg.Scene.Build()
	if err != nil {
		return nil, err
	}
	cam, err := cfg.Camera.NewCamera()
	if err != nil {
		return nil, err
	}
	if cfg.Camera.Fit && len(meshes) > 0 {
		lo, hi := sceneBounds(meshes)
		cam.FitToBounds(lo, hi)
	}

	logger.Debug("scene loaded",
		zap.Int("meshes", len(meshes)),
		zap.Stringer("camera", cam.Position),
	)
	return &scene{cfg: cfg, meshes: meshes, cam: cam, log: logger.Log}, nil
}

func sceneBounds(meshes []*mesh.Mesh) (lo, hi math.Vec3) {
	for i, m := range meshes {
		mlo, mhi := m.Bounds()
		if i == 0 {
			lo, hi = mlo, mhi
			continue
		}
		lo, hi = lo.Min(mlo), hi.Max(mhi)
	}
	return lo, hi
}

func (s *scene) renderer() (*render.Renderer, error) {
	opts, err := s.cfg.RenderOptions(s.log.Named("render"))
	if err != nil {
		return nil, err
	}
	return render.New(opts), nil
}

func (s *scene) exporter() *export.Exporter {
	return export.New(s.log.Named("export"))
}

func cmdRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	selected := fs.String("select", "", "Highlight the mesh with this id as selected")
	hoverAt := fs.String("hover-at", "", "Highlight the mesh under pixel x,y as hovered")

	s, err := loadScene(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: meshtool render [options] <out.png>")
	}
	out := fs.Arg(0)

	size := s.cfg.Size()
	mode, err := s.cfg.Mode()
	if err != nil {
		return err
	}
	bg, err := s.cfg.Background()
	if err != nil {
		return err
	}
	r, err := s.renderer()
	if err != nil {
		return err
	}

	sel := render.Selection{SelectedID: *selected}
	if *hoverAt != "" {
		x, y, err := parsePoint(*hoverAt)
		if err != nil {
			return err
		}
		if hit, ok := picking.Pick(s.meshes, s.cam, size.Width, size.Height, x, y); ok {
			sel.HoveredID = hit.MeshID
		} else {
			logger.Warn("no mesh under hover point", zap.Float32("x", x), zap.Float32("y", y))
		}
	}

	canvas := raster.New(s.cfg.Render.Width, s.cfg.Render.Height)
	canvas.Clear(bg)
	stats := r.Render(canvas, size, s.meshes, s.cam, mode, sel)
	if err := canvas.SavePNG(out); err != nil {
		return fmt.Errorf("saving %s: %w", out, err)
	}

	logger.Info("rendered scene",
		zap.String("path", out),
		zap.Stringer("mode", mode),
		zap.Int("visible", stats.Visible),
		zap.Int("triangles", stats.Triangles),
	)
	fmt.Printf("Wrote %s (%dx%d, %s, %d/%d triangles visible)\n",
		out, s.cfg.Render.Width, s.cfg.Render.Height, mode, stats.Visible, stats.Triangles)
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	s, err := loadScene(fs, args)
	if err != nil {
		return err
	}

	format, err := s.cfg.ExportFormat()
	if err != nil {
		return err
	}
	out := filepath.Join(s.cfg.Export.OutputDir, "scene")
	if fs.NArg() > 0 {
		out = fs.Arg(0)
	}
	out = export.WithExtension(out, format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := s.exporter().ExportMeshes(ctx, s.meshes, out, format); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%s, %d meshes)\n", out, format.MimeType(), len(s.meshes))
	return nil
}

func cmdExportAll(args []string) error {
	fs := flag.NewFlagSet("export-all", flag.ExitOnError)
	s, err := loadScene(fs, args)
	if err != nil {
		return err
	}

	format, err := s.cfg.ExportFormat()
	if err != nil {
		return err
	}
	dir := s.cfg.Export.OutputDir
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	jobs, err := export.DirJobs(s.meshes, dir, format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := s.exporter().ExportAll(ctx, jobs, s.cfg.Export.Concurrency); err != nil {
		return err
	}
	for _, j := range jobs {
		fmt.Println(j.Path)
	}
	return nil
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	s, err := loadScene(fs, args)
	if err != nil {
		return err
	}

	fmt.Printf("Meshes: %d\n", len(s.meshes))
	for _, m := range s.meshes {
		lo, hi := m.Bounds()
		fmt.Printf("  %-16s %6d vertices %6d triangles  bounds %v .. %v\n",
			m.ID(), m.VertexCount(), m.TriangleCount(), lo, hi)
	}

	mode, err := s.cfg.Mode()
	if err != nil {
		return err
	}
	r, err := s.renderer()
	if err != nil {
		return err
	}
	var rec render.Recorder
	stats := r.Render(&rec, s.cfg.Size(), s.meshes, s.cam, mode, render.Selection{})
	logger.Sugar.Debugf("recorded %d draw commands for %d meshes", len(rec.Commands), len(s.meshes))

	fmt.Println()
	fmt.Printf("Camera: %v -> %v (distance %.2f)\n", s.cam.Position, s.cam.Target, s.cam.Distance())
	fmt.Printf("Frame:  %dx%d %s\n", s.cfg.Render.Width, s.cfg.Render.Height, mode)
	fmt.Printf("  triangles      %d\n", stats.Triangles)
	fmt.Printf("  visible        %d\n", stats.Visible)
	fmt.Printf("  back-facing    %d\n", stats.BackFacing)
	fmt.Printf("  degenerate     %d\n", stats.Degenerate)
	fmt.Printf("  behind camera  %d\n", stats.BehindCamera)
	fmt.Println("Draw commands:")
	fmt.Printf("  fill triangle   %d\n", rec.Count(render.CommandFillTriangle))
	fmt.Printf("  stroke triangle %d\n", rec.Count(render.CommandStrokeTriangle))
	fmt.Printf("  stroke line     %d\n", rec.Count(render.CommandStrokeLine))
	return nil
}

func cmdPick(args []string) error {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	s, err := loadScene(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: meshtool pick [options] <x> <y>")
	}
	x, err := strconv.ParseFloat(fs.Arg(0), 32)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(fs.Arg(1), 32)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	size := s.cfg.Size()
	hit, ok := picking.Pick(s.meshes, s.cam, size.Width, size.Height, float32(x), float32(y))
	if !ok {
		fmt.Println("(none)")
		return nil
	}
	fmt.Printf("%s triangle %d at %v (distance %.3f)\n", hit.MeshID, hit.Triangle, hit.Point, hit.Distance)
	return nil
}

func cmdFormats() {
	fmt.Printf("%-10s %-5s %s\n", "FORMAT", "EXT", "MIME")
	for _, f := range export.Formats() {
		fmt.Printf("%-10s %-5s %s\n", f, f.Extension(), f.MimeType())
	}
}

// parsePoint parses "x,y" pixel coordinates.
func parsePoint(s string) (x, y float32, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y", s)
	}
	fx, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return float32(fx), float32(fy), nil
}
