// Package config handles meshtool configuration loading and management.
package config

// Config holds all meshtool settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Export  ExportConfig  `yaml:"export"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds viewport and rasterizer settings.
type RenderConfig struct {
	Width         int         `yaml:"width"`
	Height        int         `yaml:"height"`
	Mode          string      `yaml:"mode"` // wireframe, solid or solid-with-edges
	Background    string      `yaml:"background"`
	EdgeWidth     float32     `yaml:"edge_width"`
	ShowGrid      bool        `yaml:"show_grid"`
	GridSize      float32     `yaml:"grid_size"`
	GridDivisions int         `yaml:"grid_divisions"`
	ShowAxes      bool        `yaml:"show_axes"`
	AxisLength    float32     `yaml:"axis_length"`
	Light         LightConfig `yaml:"light"`
	Colors        ColorConfig `yaml:"colors"`
}

// LightConfig holds the directional light, angles in degrees.
type LightConfig struct {
	Azimuth   float32 `yaml:"azimuth"`
	Elevation float32 `yaml:"elevation"`
	Ambient   float32 `yaml:"ambient"`
}

// ColorConfig overrides palette entries with #RRGGBB or #RRGGBBAA values.
// Empty entries keep the default palette.
type ColorConfig struct {
	Surface  string `yaml:"surface"`
	Selected string `yaml:"selected"`
	Hovered  string `yaml:"hovered"`
	Edge     string `yaml:"edge"`
	Grid     string `yaml:"grid"`
}

// CameraConfig holds the initial camera pose and projection.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Up       [3]float32 `yaml:"up"`
	FovY     float32    `yaml:"fov_y"` // Degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Fit      bool       `yaml:"fit"` // Frame the whole scene, keeping the view direction
}

// ExportConfig holds file export settings.
type ExportConfig struct {
	Format      string `yaml:"format"`
	OutputDir   string `yaml:"output_dir"`
	Concurrency int    `yaml:"concurrency"`
}

// SceneConfig lists the meshes to build.
type SceneConfig struct {
	Meshes []MeshConfig `yaml:"meshes"`
}

// MeshConfig describes one primitive mesh.
type MeshConfig struct {
	ID       string     `yaml:"id"`
	Shape    string     `yaml:"shape"` // cube, box, plane, cylinder, sphere
	Size     [3]float32 `yaml:"size"`  // Box extents; cube and plane use X (and Z for plane)
	Radius   float32    `yaml:"radius"`
	Height   float32    `yaml:"height"`
	Segments int        `yaml:"segments"`
	Rings    int        `yaml:"rings"`
	Position [3]float32 `yaml:"position"`
	RotateY  float32    `yaml:"rotate_y"` // Degrees
	Scale    float32    `yaml:"scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:         1280,
			Height:        720,
			Mode:          "solid-with-edges",
			Background:    "#263238",
			EdgeWidth:     1,
			ShowGrid:      true,
			GridSize:      10,
			GridDivisions: 10,
			ShowAxes:      true,
			AxisLength:    1,
			Light: LightConfig{
				Azimuth:   30,
				Elevation: 50,
				Ambient:   0.3,
			},
		},
		Camera: CameraConfig{
			Position: [3]float32{4, 3, 5},
			Target:   [3]float32{0, 0, 0},
			Up:       [3]float32{0, 1, 0},
			FovY:     45,
			Near:     0.1,
			Far:      1000,
		},
		Export: ExportConfig{
			Format:      "stl",
			OutputDir:   ".",
			Concurrency: 4,
		},
		Scene: SceneConfig{
			Meshes: []MeshConfig{
				{ID: "cube", Shape: "cube", Size: [3]float32{1, 1, 1}},
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
