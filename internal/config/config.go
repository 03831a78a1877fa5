// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Format      string `yaml:"format"`      // "obj" or "glb"
	Normals     bool   `yaml:"normals"`     // Emit vn lines
	Materials   bool   `yaml:"materials"`   // Write an MTL file next to the OBJ
	Compression string `yaml:"compression"` // "none", "gzip" or "zstd"
	Workers     int    `yaml:"workers"`     // Meshing goroutines, 0 = GOMAXPROCS
	Model       int    `yaml:"model"`       // Index of the voxel grid to export
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Format:      "obj",
			Normals:     true,
			Materials:   false,
			Compression: "none",
			Workers:     0,
			Model:       0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
