package main

import (
	"errors"
	"log"
	"os"
	"syscall"

	"github.com/carlmjohnson/versioninfo"
	"github.com/iancoleman/strcase"
	"github.com/muesli/reflow/truncate"
	"github.com/urfave/cli/v2"

	"github.com/pdok/fixvec/fix64"
	"github.com/pdok/fixvec/scene"
	"github.com/pdok/fixvec/sim"
)

const SOURCE string = `sourceScene`
const TARGET string = `targetGpkg`
const OVERWRITE string = `overwrite`
const STEPS string = `steps`
const PROXIMITY string = `proximity`

const logNameWidth = 24

func main() {
	app := cli.NewApp()
	app.Name = "fixvec"
	app.Usage = "A deterministic fixed-point trajectory simulator"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     SOURCE,
			Aliases:  []string{"s"},
			Usage:    "Source scene JSON",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(SOURCE)},
		},
		&cli.StringFlag{
			Name:     TARGET,
			Aliases:  []string{"t"},
			Usage:    "Target GPKG to write the trace to. Omit to only log the run",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(TARGET)},
		},
		&cli.BoolFlag{
			Name:     OVERWRITE,
			Aliases:  []string{"o"},
			Usage:    "Overwrite the target GPKG if it exists",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(OVERWRITE)},
		},
		&cli.UintFlag{
			Name:     STEPS,
			Aliases:  []string{"n"},
			Usage:    "Number of steps to run, overriding the scene",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(STEPS)},
		},
		&cli.Float64Flag{
			Name:     PROXIMITY,
			Aliases:  []string{"p"},
			Usage:    "Report pairs of bodies that end up within this distance of each other",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(PROXIMITY)},
		},
	}

	app.Action = func(c *cli.Context) error {
		scn, err := scene.Load(c.String(SOURCE))
		if err != nil {
			return err
		}
		steps := scn.Steps
		if c.Uint(STEPS) > 0 {
			steps = c.Uint(STEPS)
		}

		simulation, err := sim.FromScene(scn)
		if err != nil {
			return err
		}

		log.Printf("=== start simulating %s ===", scn.Name)
		simulation.Run(steps)
		log.Printf("  steps:   %d", simulation.StepCount())
		log.Printf("  bounces: %d", len(simulation.Bounces()))
		for _, body := range simulation.Bodies() {
			log.Printf("  %-*s %v", logNameWidth, truncate.StringWithTail(body.Name, logNameWidth, "..."), body.Pos)
		}

		if c.Float64(PROXIMITY) > 0 {
			pairs := simulation.Proximity(fix64.FromFloat64(c.Float64(PROXIMITY)))
			for _, pair := range pairs {
				log.Printf("  near: %s and %s", pair.A, pair.B)
			}
			log.Printf("  near pairs: %d", len(pairs))
		}

		target := c.String(TARGET)
		if target != "" {
			if c.Bool(OVERWRITE) {
				removeTarget(target)
			}
			err = simulation.WriteGeopackage(target)
			if err != nil {
				return err
			}
			log.Printf("  trace written to %s", target)
		}
		log.Println("=== done simulating ===")
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func removeTarget(targetPath string) {
	err := os.Remove(targetPath)
	var pathError *os.PathError
	if err != nil {
		if !(errors.As(err, &pathError) && errors.Is(pathError.Err, syscall.ENOENT)) {
			log.Fatalf("could not remove target file: %e", err)
		}
	}
}
