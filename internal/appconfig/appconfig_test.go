package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntP("width", "w", 0, "")
	flags.IntP("height", "h", 0, "")
	flags.IntP("samples", "s", 0, "")
	flags.IntP("light-samples", "l", 0, "")
	flags.IntP("bounces", "b", 0, "")
	flags.BoolP("debug", "d", false, "")
	flags.Bool("high-dpi", false, "")
	flags.BoolP("image-mode", "i", false, "")
	flags.Bool("single-threaded", false, "")
	flags.String("scene", "diffuse", "")
	flags.String("config", "", "")
	return flags
}

func TestLoadAppliesDefaultsWhenUnset(t *testing.T) {
	opts, err := Load(newFlags())
	require.NoError(t, err)
	assert.Equal(t, 600, opts.Width)
	assert.Equal(t, 600, opts.Height)
	assert.Equal(t, 4, opts.SamplesPerPixel)
	assert.Equal(t, "diffuse", opts.Scene)
}

func TestLoadHonorsExplicitFlags(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Set("width", "64"))
	require.NoError(t, flags.Set("height", "48"))
	require.NoError(t, flags.Set("scene", "specular"))
	require.NoError(t, flags.Set("image-mode", "true"))

	opts, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 64, opts.Width)
	assert.Equal(t, 48, opts.Height)
	assert.Equal(t, "specular", opts.Scene)
	assert.True(t, opts.ImageMode)
}

func TestLoadRejectsNonPositiveDimensions(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Set("width", "0"))

	_, err := Load(flags)
	assert.Error(t, err)
}

func TestLoadRejectsZeroSamples(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Set("samples", "0"))

	_, err := Load(flags)
	assert.Error(t, err)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pathtrace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 128\nheight: 96\nscene: dragon\n"), 0o644))

	flags := newFlags()
	require.NoError(t, flags.Set("config", path))

	opts, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 128, opts.Width)
	assert.Equal(t, 96, opts.Height)
	assert.Equal(t, "dragon", opts.Scene)
}
