package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/meshkit/pkg/encoding"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

// Exporter writes meshes to files. Meshes are immutable, so any number of
// exports may run concurrently.
type Exporter struct {
	log *zap.Logger
}

// New creates an exporter. A nil logger disables logging.
func New(log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{log: log}
}

var defaultExporter = New(nil)

// ExportMesh writes m to path using the default exporter.
func ExportMesh(ctx context.Context, m *mesh.Mesh, path string, f Format) error {
	return defaultExporter.ExportMesh(ctx, m, path, f)
}

// ExportMeshes writes meshes to path using the default exporter.
func ExportMeshes(ctx context.Context, meshes []*mesh.Mesh, path string, f Format) error {
	return defaultExporter.ExportMeshes(ctx, meshes, path, f)
}

// ExportMesh encodes m and writes it to path. The file is written to a
// temporary sibling and renamed into place, so path either holds the full
// export or is left untouched.
func (e *Exporter) ExportMesh(ctx context.Context, m *mesh.Mesh, path string, f Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Marshal(m, f)
	if err != nil {
		e.log.Error("export failed", zap.String("mesh", meshID(m)), zap.String("path", path), zap.Stringer("format", f), zap.Error(err))
		return err
	}
	return e.write(ctx, m.ID(), path, f, data)
}

// ExportMeshes writes several meshes to one file, merging them when there is
// more than one. An empty list fails with ErrInvalidArgument.
func (e *Exporter) ExportMeshes(ctx context.Context, meshes []*mesh.Mesh, path string, f Format) error {
	m, err := single(meshes)
	if err != nil {
		e.log.Error("export failed", zap.String("path", path), zap.Stringer("format", f), zap.Int("meshes", len(meshes)), zap.Error(err))
		return err
	}
	return e.ExportMesh(ctx, m, path, f)
}

// Job is one file of a batch export.
type Job struct {
	Mesh   *mesh.Mesh
	Path   string
	Format Format
}

// DirJobs plans one file per mesh in dir, named after the mesh id. Ids that
// fold to the same file name (compared case-insensitively) fail with
// ErrInvalidArgument instead of overwriting each other.
func DirJobs(meshes []*mesh.Mesh, dir string, f Format) ([]Job, error) {
	jobs := make([]Job, 0, len(meshes))
	owners := make(map[string]string, len(meshes))
	for i, m := range meshes {
		if m == nil {
			return nil, fmt.Errorf("%w: mesh %d is nil", ErrInvalidArgument, i)
		}
		name := encoding.FileName(m.ID()) + f.Extension()
		key := strings.ToLower(name)
		if other, ok := owners[key]; ok {
			return nil, fmt.Errorf("%w: meshes %q and %q both export to %s", ErrInvalidArgument, other, m.ID(), name)
		}
		owners[key] = m.ID()
		jobs = append(jobs, Job{Mesh: m, Path: filepath.Join(dir, name), Format: f})
	}
	return jobs, nil
}

// ExportAll runs the jobs concurrently, at most concurrency at a time
// (unlimited when concurrency <= 0). Two jobs may not share a path. The first
// failure cancels jobs that have not started yet and is returned.
func (e *Exporter) ExportAll(ctx context.Context, jobs []Job, concurrency int) error {
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no export jobs", ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		p := filepath.Clean(job.Path)
		if seen[p] {
			return fmt.Errorf("%w: more than one job writes %s", ErrInvalidArgument, p)
		}
		seen[p] = true
	}

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, job := range jobs {
		g.Go(func() error {
			return e.ExportMesh(ctx, job.Mesh, job.Path, job.Format)
		})
	}
	return g.Wait()
}

func (e *Exporter) write(ctx context.Context, id, path string, f Format, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		e.log.Error("export failed", zap.String("mesh", id), zap.String("path", path), zap.Stringer("format", f), zap.Error(err))
		return fmt.Errorf("exporting %s to %s: %w", id, path, err)
	}
	e.log.Info("exported mesh",
		zap.String("mesh", id),
		zap.String("path", path),
		zap.Stringer("format", f),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			err = multierr.Append(err, ignoreNotExist(os.Remove(tmpName)))
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return multierr.Append(err, tmp.Close())
	}
	if err := tmp.Sync(); err != nil {
		return multierr.Append(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func meshID(m *mesh.Mesh) string {
	if m == nil {
		return ""
	}
	return m.ID()
}

func ignoreNotExist(err error) error {
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
