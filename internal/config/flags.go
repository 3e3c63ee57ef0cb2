package config

import "flag"

var (
	flagConfig string
	flagDebug  bool
	flagWidth  int
	flagHeight int
	flagMode   string
	flagFormat string
	flagOut    string
)

// BindFlags registers the config override flags on fs. Each subcommand owns
// its FlagSet, so call this before fs.Parse.
func BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.IntVar(&flagWidth, "width", 0, "Viewport width")
	fs.IntVar(&flagHeight, "height", 0, "Viewport height")
	fs.StringVar(&flagMode, "mode", "", "Render mode: wireframe, solid, solid-with-edges")
	fs.StringVar(&flagFormat, "format", "", "Export format: stl, stl-ascii, obj, ply")
	fs.StringVar(&flagOut, "out", "", "Output directory for exports")
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagWidth > 0 {
		cfg.Render.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Render.Height = flagHeight
	}
	if flagMode != "" {
		cfg.Render.Mode = flagMode
	}
	if flagFormat != "" {
		cfg.Export.Format = flagFormat
	}
	if flagOut != "" {
		cfg.Export.OutputDir = flagOut
	}
}
