// Command pathtrace renders a Cornell-box scene once with a Monte Carlo
// path tracer and, with --image-mode, writes it to a PNG file. It opens
// no window: without --image-mode it renders and then exits with an
// error pointing to cmd/viewer, the interactive display adapter.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aharden/lumen/internal/appconfig"
	"github.com/aharden/lumen/internal/logging"
	"github.com/aharden/lumen/pkg/controller"
	"github.com/aharden/lumen/pkg/loaders"
	"github.com/aharden/lumen/pkg/scene"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathtrace",
		Short: "Render a Cornell-box scene with a Monte Carlo path tracer",
		RunE:  run,
	}

	flags := cmd.Flags()
	flags.IntP("width", "w", 0, "image width (default 600)")
	flags.IntP("height", "h", 0, "image height (default 600)")
	flags.IntP("samples", "s", 0, "samples per pixel (default 4)")
	flags.IntP("light-samples", "l", 0, "light samples per shadow test (default 4)")
	flags.IntP("bounces", "b", 0, "maximum path bounces (default 50)")
	flags.BoolP("debug", "d", false, "start in the cheap distance-shaded debug mode")
	flags.Bool("high-dpi", false, "double the framebuffer relative to the window")
	flags.BoolP("image-mode", "i", false, "render once and write a PNG instead of opening a window")
	flags.Bool("single-threaded", false, "disable the worker pool")
	flags.String("scene", "diffuse", "scene preset: diffuse, specular, dragon, teapot, triangle")
	flags.String("mesh", "", "mesh file path for the dragon/teapot presets")
	flags.String("config", "", "optional YAML config file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := appconfig.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.NewDevelopment()
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logger.Sync()

	preset, err := scene.ParsePreset(opts.Scene)
	if err != nil {
		return err
	}
	meshPath, _ := cmd.Flags().GetString("mesh")
	sc, err := scene.Build(preset, loaders.OBJLoader{}, meshPath)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	ctrl := controller.New(opts.Config, sc, logger)
	if opts.Debug {
		ctrl.ToggleRenderingMode()
	}

	logger.Printf("rendering %s at %dx%d, %d spp, %d bounces", opts.Scene, opts.Width, opts.Height, opts.SamplesPerPixel, opts.MaxBounces)
	ctrl.Render(true)

	if opts.ImageMode {
		return dumpImage(ctrl, opts.Width, opts.Height)
	}

	return fmt.Errorf("interactive mode requires the viewer binary (cmd/viewer); pass --image-mode to render to a file")
}

func dumpImage(ctrl *controller.Controller, width, height int) error {
	buf := make([]byte, width*height*4)
	ctrl.Snapshot(buf)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, buf)

	if err := os.MkdirAll("dump", 0o755); err != nil {
		return fmt.Errorf("creating dump directory: %w", err)
	}
	path := filepath.Join("dump", fmt.Sprintf("%d.png", time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	fmt.Println("wrote", path)
	return nil
}
