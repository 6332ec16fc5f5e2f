package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("raytracer")

func main() {
	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render whitted-style raytraced scenes"
	app.ArgsUsage = "<scene.xml> [<out.png>]"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = render

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func render(ctx *cli.Context) error {
	if ctx.Bool("v") {
		log.SetLevel(log.Debug)
	}

	if ctx.NArg() < 1 {
		cli.ShowAppHelp(ctx)
		return errors.New("missing scene file argument")
	}

	s, err := scene.Load(ctx.Args().First(), 0)
	if err != nil {
		return err
	}
	if ctx.NArg() >= 2 {
		s.OutputFile = ctx.Args().Get(1)
	}
	if err := checkScene(s); err != nil {
		return err
	}

	stats, err := renderer.Render(s)
	if err != nil {
		return err
	}
	stats.Summary(os.Stdout)
	return nil
}

// checkScene rejects settings the renderer cannot handle and warns
// about the expensive ones
func checkScene(s *scene.Scene) error {
	if s.Dispersion {
		logger.Notice("Rendering with dispersion effect. This will increase rendering time.")
	}
	if s.Camera.SuperSampling() > 1 {
		logger.Notice("Rendering with supersampling. This will increase rendering time.")
	} else if s.Camera.LensSize() != 0 {
		return errors.New("depth of field needs supersampling")
	}
	if s.SubFrames > 1 {
		logger.Notice("Rendering with motion blur. This will increase rendering time.")
	}
	if s.PhotonScanSteps > 0 {
		logger.Notice("Rendering with caustics. This will increase rendering time.")
	}
	return nil
}
