package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-bridges/internal/bridge"
)

// Files names the snapshot files inside the data directory. Only Bridges is
// required.
type Files struct {
	Bridges     string `yaml:"bridges" mapstructure:"bridges"`
	Inspections string `yaml:"inspections" mapstructure:"inspections"`
	Sufficiency string `yaml:"sufficiency" mapstructure:"sufficiency"`
	Projects    string `yaml:"projects" mapstructure:"projects"`
}

// DefaultFiles are the file names the dashboard build writes.
var DefaultFiles = Files{
	Bridges:     "bridges.geojson",
	Inspections: "inspections.json",
	Sufficiency: "sufficiency.json",
	Projects:    "projects.json",
}

// Loader reads a snapshot from a data directory.
type Loader struct {
	DataDir string
	Files   Files
}

// Load reads and validates the whole snapshot.
func (l Loader) Load(ctx context.Context) (*bridge.Dataset, error) {
	bridges, err := ReadBridges(filepath.Join(l.DataDir, l.Files.Bridges))
	if err != nil {
		return nil, err
	}
	ds := &bridge.Dataset{Bridges: bridges}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	db, err := OpenDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if ds.Inspections, err = readOptional(ctx, db, l.path(l.Files.Inspections), ReadInspections); err != nil {
		return nil, err
	}
	if ds.Sufficiency, err = readOptional(ctx, db, l.path(l.Files.Sufficiency), ReadSufficiency); err != nil {
		return nil, err
	}
	if ds.Projects, err = readOptional(ctx, db, l.path(l.Files.Projects), ReadProjects); err != nil {
		return nil, err
	}

	zap.L().Info("snapshot: loaded",
		zap.String("data_dir", l.DataDir),
		zap.Int("bridges", len(ds.Bridges)),
		zap.Int("inspected", len(ds.Inspections)),
		zap.Int("scored", len(ds.Sufficiency)),
		zap.Int("with_projects", len(ds.Projects)),
	)
	return ds, nil
}

func (l Loader) path(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(l.DataDir, name)
}

// readOptional runs read when the file exists and returns an empty map
// otherwise.
func readOptional[T any](ctx context.Context, db *sql.DB, path string, read func(context.Context, *sql.DB, string) (map[string]T, error)) (map[string]T, error) {
	if path == "" {
		return map[string]T{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			zap.L().Info("snapshot: optional file missing", zap.String("path", path))
			return map[string]T{}, nil
		}
		return nil, eris.Wrapf(err, "snapshot: stat %s", path)
	}
	return read(ctx, db, path)
}
