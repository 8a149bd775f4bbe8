// Command viewer opens an interactive window over the path tracer:
// WASD/QE move the camera, R toggles debug/full mode, F starts a full
// render, C toggles continuous re-render on movement, Esc quits.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"github.com/aharden/lumen/internal/appconfig"
	"github.com/aharden/lumen/internal/logging"
	"github.com/aharden/lumen/pkg/controller"
	"github.com/aharden/lumen/pkg/loaders"
	"github.com/aharden/lumen/pkg/scene"
	"github.com/aharden/lumen/pkg/viewer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "Interactively explore a Cornell-box scene with a Monte Carlo path tracer",
		RunE:  run,
	}

	flags := cmd.Flags()
	flags.IntP("width", "w", 0, "window width (default 600)")
	flags.IntP("height", "h", 0, "window height (default 600)")
	flags.IntP("samples", "s", 0, "samples per pixel (default 4)")
	flags.IntP("light-samples", "l", 0, "light samples per shadow test (default 4)")
	flags.IntP("bounces", "b", 0, "maximum path bounces (default 50)")
	flags.BoolP("debug", "d", false, "start in the cheap distance-shaded debug mode")
	flags.Bool("high-dpi", false, "double the framebuffer relative to the window")
	flags.BoolP("image-mode", "i", false, "unused by the viewer; present so shared config files parse")
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

	windowWidth, windowHeight := opts.Width, opts.Height
	renderCfg := opts.Config
	if opts.HighDPI {
		renderCfg.Width *= 2
		renderCfg.Height *= 2
	}

	ctrl := controller.New(renderCfg, sc, logger)
	if opts.Debug {
		ctrl.ToggleRenderingMode()
	}

	win, err := viewer.New(windowWidth, windowHeight, renderCfg.Width, renderCfg.Height, "pathtrace")
	if err != nil {
		return fmt.Errorf("opening viewer window: %w", err)
	}
	defer win.Destroy()

	ctrl.Render(false)

	buf := make([]byte, renderCfg.Width*renderCfg.Height*4)
	edges := viewer.NewEdgeKeys()
	for !win.ShouldClose() {
		win.PollEvents()
		if win.IsKeyPressed(glfw.KeyEscape) {
			break
		}
		viewer.PollInput(win, ctrl, edges)

		ctrl.Snapshot(buf)
		win.Present(buf)
	}

	return nil
}
