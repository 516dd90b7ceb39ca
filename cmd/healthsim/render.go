package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/ardnew/healthmetrics/canvas"
	"github.com/ardnew/healthmetrics/display"
	"github.com/ardnew/healthmetrics/model"
	"github.com/ardnew/healthmetrics/run"
)

const atLayout = "2006-01-02T15:04"

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the watchface to a PNG image",
	Long: `Render replays the profile's day up to the requested time and writes one
frame of the watchface as a PNG image, scaled up for viewing on a desktop.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("output", "o", "face.png", "output PNG file path")
	renderCmd.Flags().IntP("scale", "s", 3, "integer magnification of the output image")
	renderCmd.Flags().Int("width", display.FaceWidth, "screen width in pixels")
	renderCmd.Flags().Int("height", display.FaceHeight, "screen height in pixels")
}

func runRender(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	scale, _ := cmd.Flags().GetInt("scale")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}

	p, at, err := setup(cmd)
	if err != nil {
		return err
	}

	screen := canvas.NewImage(width, height)
	data := simulate(p, at, display.New(screen, display.Config{
		Theme: p.theme(),
		Log:   log,
	}))
	log.Debugw("rendered face",
		"time", data.Time.Format(atLayout),
		"steps", data.Health.Steps,
		"system", data.System.String())

	src := screen.RGBA()
	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		return fmt.Errorf("failed to encode %s: %w", output, err)
	}
	log.Infow("wrote watchface", "path", output, "width", width*scale, "height", height*scale)
	return nil
}

// setup loads the profile and simulation time named by the persistent flags.
func setup(cmd *cobra.Command) (Profile, time.Time, error) {
	path, _ := cmd.Flags().GetString("profile")
	when, _ := cmd.Flags().GetString("at")

	p, err := loadProfile(path)
	if err != nil {
		return p, time.Time{}, err
	}
	at := time.Now()
	if when != "" {
		if at, err = time.ParseInLocation(atLayout, when, time.Local); err != nil {
			return p, at, fmt.Errorf("invalid time %q: %w", when, err)
		}
	}
	return p, at, nil
}

// simulate replays the profile's day and drives disp through startup and the
// first tick at time at. It returns the Model that was rendered last.
func simulate(p Profile, at time.Time, disp run.Display) model.Model {
	store := model.NewStore()
	runner := run.New(disp, store, run.Sources{
		Now:      func() time.Time { return at },
		Clock24h: func() bool { return p.Clock24h },
		Health:   p.simulate(at),
		Battery:  p.battery,
	})

	store.Set(func(m *model.Model) {
		m.Status = model.StatusStarting
		m.Connected = p.Connected
	})
	runner.Step() // starting
	runner.Step() // running
	return store.Peek()
}
