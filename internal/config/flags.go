package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config
// untouched, except Model where any negative value does.
type Flags struct {
	Config      string
	Debug       bool
	Format      string
	NoNormals   bool
	Materials   bool
	Compression string
	Workers     int
	Model       int
}

// NewFlags returns a Flags that overrides nothing.
func NewFlags() *Flags {
	return &Flags{Model: -1}
}

// Register binds the override flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Format, "format", "", "Output format: obj or glb")
	fs.BoolVar(&f.NoNormals, "no-normals", false, "Omit vertex normals")
	fs.BoolVar(&f.Materials, "mtl", false, "Write an MTL material library")
	fs.StringVar(&f.Compression, "compress", "", "OBJ compression: none, gzip or zstd")
	fs.IntVar(&f.Workers, "workers", 0, "Meshing goroutines (0 = all CPUs)")
	fs.IntVar(&f.Model, "model", -1, "Index of the voxel grid to export")
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return f.Config
}

// applyFlags applies CLI flag overrides to the config.
func (f *Flags) applyFlags(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Format != "" {
		cfg.Export.Format = f.Format
	}
	if f.NoNormals {
		cfg.Export.Normals = false
	}
	if f.Materials {
		cfg.Export.Materials = true
	}
	if f.Compression != "" {
		cfg.Export.Compression = f.Compression
	}
	if f.Workers > 0 {
		cfg.Export.Workers = f.Workers
	}
	if f.Model >= 0 {
		cfg.Export.Model = f.Model
	}
}
