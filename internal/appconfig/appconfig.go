// Package appconfig layers CLI flags over an optional YAML file (read
// only when --config names it) and environment variables into a
// render.Config, using viper the way
// a cobra-based CLI conventionally wires its flags.
package appconfig

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aharden/lumen/pkg/render"
)

// Options is the full set of settings the CLI and viewer accept,
// beyond what render.Config itself holds.
type Options struct {
	render.Config
	Scene      string
	ImageMode  bool
	Debug      bool
	ConfigPath string
}

// Load resolves Options from (in increasing priority) defaults, an
// optional YAML file, environment variables prefixed PATHTRACE_, and
// already-parsed flags.
func Load(flags *pflag.FlagSet) (Options, error) {
	v := viper.New()
	v.SetEnvPrefix("PATHTRACE")
	v.AutomaticEnv()

	def := render.DefaultConfig()
	v.SetDefault("width", def.Width)
	v.SetDefault("height", def.Height)
	v.SetDefault("samples", def.SamplesPerPixel)
	v.SetDefault("light-samples", def.LightSamples)
	v.SetDefault("bounces", def.MaxBounces)
	v.SetDefault("scene", "diffuse")
	v.SetDefault("debug", false)
	v.SetDefault("high-dpi", false)
	v.SetDefault("image-mode", false)
	v.SetDefault("single-threaded", false)

	if err := v.BindPFlags(flags); err != nil {
		return Options{}, fmt.Errorf("appconfig: binding flags: %w", err)
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Options{}, fmt.Errorf("appconfig: reading %q: %w", path, err)
		}
	}

	opts := Options{
		Config: render.Config{
			Width:           v.GetInt("width"),
			Height:          v.GetInt("height"),
			FOVRadians:      def.FOVRadians,
			SamplesPerPixel: v.GetInt("samples"),
			LightSamples:    v.GetInt("light-samples"),
			MaxBounces:      v.GetInt("bounces"),
			SingleThreaded:  v.GetBool("single-threaded"),
			HighDPI:         v.GetBool("high-dpi"),
		},
		Scene:      v.GetString("scene"),
		ImageMode:  v.GetBool("image-mode"),
		Debug:      v.GetBool("debug"),
		ConfigPath: v.GetString("config"),
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		return Options{}, fmt.Errorf("appconfig: width and height must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.SamplesPerPixel < 1 {
		return Options{}, fmt.Errorf("appconfig: samples must be at least 1, got %d", opts.SamplesPerPixel)
	}
	return opts, nil
}
