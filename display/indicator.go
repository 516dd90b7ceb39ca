package display

import (
	"github.com/ardnew/healthmetrics/metric"
	"github.com/ardnew/healthmetrics/model"
)

// Height of the battery cell, in rows of fill.
const cellHeight = 12 // px

// Positions of the indicator elements, within the indicator column.
const (
	batteryY   = 26
	bluetoothY = 52
)

func (d *Display) drawBattery(bat model.Battery) {
	x, y := int16(FaceWidth-indWidth), int16(batteryY)

	// outline is green while charging
	outline := d.config.Theme.Foreground()
	if bat.Charging {
		outline = green
	}
	d.drawRect(x+7, y+0, 5, 2, outline)  // terminal
	d.drawRect(x+5, y+2, 9, 16, outline) // cell

	level := int16(metric.BatteryFill(int(bat.Percent), cellHeight))
	fill := d.config.Theme.Foreground()
	if level <= 2 {
		fill = red
	}
	d.fillRect(x+7, y+4+cellHeight-level, 5, level, fill)
}

// bluetooth is the glyph shown while the phone is disconnected.
var bluetooth = [...]string{
	"...#....",
	"...##...",
	"...#.#..",
	"#..#..#.",
	".#.#.#..",
	"..###...",
	"...#....",
	"..###...",
	".#.#.#..",
	"#..#..#.",
	"...#.#..",
	"...##...",
	"...#....",
}

func (d *Display) drawBluetooth() {
	gw, gh := int16(len(bluetooth[0])), int16(len(bluetooth))
	x := int16(FaceWidth-indWidth) + (indWidth-gw)/2
	y := int16(bluetoothY) + (18-gh)/2
	fg := d.config.Theme.Foreground()
	for row, line := range bluetooth {
		for col := range line {
			if line[col] == '#' {
				d.fillRect(x+int16(col), y+int16(row), 1, 1, fg)
			}
		}
	}
}
