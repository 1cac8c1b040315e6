// Package config holds blurimg settings loaded from a TOML file.
package config

import (
	"os"
	"runtime"

	"github.com/pelletier/go-toml"
)

type config struct {
	Main  configMain  `toml:"main"`
	Build configBuild `toml:"build"`
}

type configMain struct {
	LogLevel string `toml:"log_level"`
}

type configBuild struct {
	Profile     string `toml:"profile"`
	Workers     int    `toml:"workers"`
	ThumbSize   int    `toml:"thumb_size"`
	ComponentsX int    `toml:"components_x"`
	ComponentsY int    `toml:"components_y"`
	Compression string `toml:"compression"`
	Incremental bool   `toml:"incremental"`
	OutDir      string `toml:"out_dir"`
}

// Config holds the configuration data from configuration files or flags.
//
// The values below are defaults; a configuration file overrides them and
// command flags override both.  Zero thumb size and components mean "use
// the profile's value".
var Config = Default()

// Default returns a fresh copy of the built-in settings.
func Default() config {
	return config{
		Main: configMain{
			LogLevel: "info",
		},
		Build: configBuild{
			Profile:     "placeholder",
			Workers:     runtime.NumCPU(),
			Compression: "none",
			OutDir:      "./blurimg_out",
		},
	}
}

// LoadConfiguration loads the configuration file into Config.  An empty
// path keeps the defaults.
func LoadConfiguration(configPath string) error {
	if configPath == "" {
		return nil
	}

	fd, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer fd.Close()

	dec := toml.NewDecoder(fd)
	return dec.Decode(&Config)
}
