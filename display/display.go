// Package display renders the watchface onto a pixel display.
package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"github.com/ardnew/healthmetrics/clock"
	"github.com/ardnew/healthmetrics/metric"
	"github.com/ardnew/healthmetrics/model"
)

// Dimensions of the face. Larger screens center the face.
const (
	FaceWidth  = 144 // px
	FaceHeight = 168 // px
)

// Width of the indicator column on the right edge of the face holding the
// AM/PM, battery and Bluetooth elements.
const indWidth = 18 // px

// Theme selects the face colors.
type Theme uint8

// Constants defining each available Theme.
const (
	ThemeBlack Theme = iota // white on black
	ThemeWhite              // black on white
)

// ThemeFor returns the Theme matching the color of the watch case. Light cases
// get a white face.
func ThemeFor(caseColor string) Theme {
	switch caseColor {
	case "white", "pink", "time-white":
		return ThemeWhite
	}
	return ThemeBlack
}

var (
	black = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	green = color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}
	red   = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
)

// Background returns the face color of the theme.
func (t Theme) Background() color.RGBA {
	if t == ThemeWhite {
		return white
	}
	return black
}

// Foreground returns the text color of the theme.
func (t Theme) Foreground() color.RGBA {
	if t == ThemeWhite {
		return black
	}
	return white
}

// Config defines the presentation of a Display.
type Config struct {
	Theme Theme
	Log   metric.Logger // receives formatting diagnostics, may be nil
}

// Display draws watchface Model data onto a device.
type Display struct {
	dev    drivers.Displayer
	config Config
	ox, oy int16 // origin of the face on the device
}

// New returns a new Display drawing onto dev.
func New(dev drivers.Displayer, config Config) *Display {
	width, height := dev.Size()
	return &Display{
		dev:    dev,
		config: config,
		ox:     max(0, (width-FaceWidth)/2),
		oy:     max(0, (height-FaceHeight)/2),
	}
}

// Update redraws the display from the given Model data.
func (d *Display) Update(data model.Model) error {
	// Update is only called if the Model data has changed. Every element is
	// redrawn, so that no stale pixels are left behind.

	switch data.Status {
	case model.StatusIdle, model.StatusStopped:
		d.clear(black)

	case model.StatusStarting:
		d.clear(d.config.Theme.Background())
		d.drawLabels()
		d.drawText(timeBox, "00:00")

	case model.StatusRunning:
		d.clear(d.config.Theme.Background())
		d.drawLabels()

		when := clock.Format(data.Time, data.Clock24h)
		stat := metric.Format(d.config.Log, data.Health, data.System)

		d.drawText(dateBox, when.Date)
		d.drawText(ampmBox, when.AMPM)
		d.drawBattery(data.Battery)
		d.drawText(timeBox, when.Time)
		d.drawText(stepsBox, stat.Steps)
		d.drawText(kcalBox, stat.Kcal)
		d.drawText(distanceBox, stat.Distance)
		d.drawText(activeBox, stat.ActiveTime)
		if !data.Connected {
			d.drawBluetooth()
		}
	}

	return d.dev.Display()
}

func (d *Display) clear(c color.RGBA) {
	width, height := d.dev.Size()
	d.fillRect(-d.ox, -d.oy, width, height, c)
}

func (d *Display) drawLabels() {
	fg, bg := d.config.Theme.Foreground(), d.config.Theme.Background()
	for _, b := range labelBoxes {
		// labels are inverted
		d.fillRect(b.x, b.y, b.w, b.h, fg)
		d.writeCentered(b, b.text, bg)
	}
}

func (d *Display) drawText(b box, str string) {
	d.writeCentered(b, str, d.config.Theme.Foreground())
}

func (d *Display) writeCentered(b box, str string, c color.RGBA) {
	_, w := tinyfont.LineWidth(b.font, str)
	x := b.x + (b.w-int16(w))/2
	tinyfont.WriteLine(d.dev, b.font, d.ox+x, d.oy+b.y+b.baseline, str, c)
}

func (d *Display) clipRect(x, y, w, h int16) (bool, int16, int16, int16, int16) {
	// translate face coordinates to device coordinates
	x, y = x+d.ox, y+d.oy
	// normalize width/height to be positive
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	// ensure origin is within bounds
	sx, sy := d.dev.Size()
	if x < 0 {
		x, w = 0, w+x
	} else if x >= sx {
		return false, 0, 0, 0, 0
	}
	if y < 0 {
		y, h = 0, h+y
	} else if y >= sy {
		return false, 0, 0, 0, 0
	}
	// ensure rect bounds is within screen bounds
	if x+w >= sx {
		w = sx - x
	}
	if y+h >= sy {
		h = sy - y
	}
	return w > 0 && h > 0, x, y, w, h
}

// fillRect fills a rectangle given in face coordinates.
func (d *Display) fillRect(x, y, w, h int16, c color.RGBA) {
	var ok bool
	if ok, x, y, w, h = d.clipRect(x, y, w, h); ok {
		for row := y; row < y+h; row++ {
			for col := x; col < x+w; col++ {
				d.dev.SetPixel(col, row, c)
			}
		}
	}
}

// drawRect outlines a rectangle given in face coordinates.
func (d *Display) drawRect(x, y, w, h int16, c color.RGBA) {
	d.fillRect(x, y, w, 1, c)
	d.fillRect(x, y+h-1, w, 1, c)
	d.fillRect(x, y, 1, h, c)
	d.fillRect(x+w-1, y, 1, h, c)
}

// box is a text element of the face layout.
type box struct {
	x, y, w, h int16
	font       *tinyfont.Font
	baseline   int16 // offset of the text baseline from y
	text       string
}

var (
	timeBox     = box{x: 0, y: 0, w: FaceWidth - indWidth, h: 44, font: &freesans.Bold18pt7b, baseline: 34}
	dateBox     = box{x: 0, y: 40, w: FaceWidth - indWidth, h: 32, font: &freesans.Bold12pt7b, baseline: 26}
	ampmBox     = box{x: FaceWidth - (indWidth + 4), y: 6, w: indWidth + 4, h: 18, font: &freesans.Bold9pt7b, baseline: 14}
	stepsBox    = box{x: 0, y: 85, w: 60, h: 30, font: &freesans.Bold12pt7b, baseline: 25}
	kcalBox     = box{x: 0, y: 125, w: 60, h: 30, font: &freesans.Bold12pt7b, baseline: 25}
	distanceBox = box{x: 60, y: 85, w: 84, h: 30, font: &freesans.Bold12pt7b, baseline: 25}
	activeBox   = box{x: 60, y: 125, w: 84, h: 30, font: &freesans.Bold12pt7b, baseline: 25}

	labelBoxes = []box{
		{x: 2, y: 76, w: 56, h: 16, font: &tinyfont.TomThumb, baseline: 11, text: "STEPS"},
		{x: 2, y: 116, w: 56, h: 16, font: &tinyfont.TomThumb, baseline: 11, text: "KCAL"},
		{x: 62, y: 76, w: 80, h: 16, font: &tinyfont.TomThumb, baseline: 11, text: "DISTANCE"},
		{x: 62, y: 116, w: 80, h: 16, font: &tinyfont.TomThumb, baseline: 11, text: "ACT TIME"},
	}
)
