//go:build tinygo

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aykevl/board"
	"github.com/aykevl/tinygl/pixel"
	"tinygo.org/x/bluetooth"
	"tinygo.org/x/drivers"

	"github.com/ardnew/healthmetrics/canvas"
	"github.com/ardnew/healthmetrics/display"
	"github.com/ardnew/healthmetrics/health"
	"github.com/ardnew/healthmetrics/link"
	"github.com/ardnew/healthmetrics/metric"
	"github.com/ardnew/healthmetrics/model"
	"github.com/ardnew/healthmetrics/run"
)

// Build-time preferences, set with for example:
//
//	tinygo flash -target pinetime -ldflags="-X main.CaseColor=white -X main.Units=imperial"
var (
	CaseColor = "black"
	Units     = "metric"
	Clock24h  = "false"
)

func main() {
	// initialize the screen and hand its native pixel format to start
	start(board.Display.Configure())
}

func start[T pixel.Color](screen board.Displayer[T]) {
	board.Power.Configure()
	if err := board.Sensors.Configure(drivers.Acceleration); nil != err {
		halt(err)
	}
	system, err := metric.ParseSystem(Units)
	if nil != err {
		println("units " + Units + ": " + err.Error())
	}

	store := model.NewStore()
	disp := display.New(canvas.NewBitmap[T](screen), display.Config{
		Theme: display.ThemeFor(CaseColor),
		Log:   logger{},
	})
	// initialize the Bluetooth peripheral
	ble := link.New(bluetooth.DefaultAdapter, store, link.Config{})
	if err := ble.Start(); nil != err {
		halt(err)
	}

	runner := run.New(disp, store, run.Sources{
		Now:      time.Now,
		Clock24h: func() bool { return Clock24h == "true" },
		Health:   health.New(stepCounter{}, health.Config{System: system}),
		Battery:  battery,
	})
	runner.OnSample = func(m model.Model) {
		if err := ble.SetBattery(m.Battery.Percent); nil != err {
			println("error: " + err.Error())
		}
	}
	// enter the event loop
	runner.Run(context.Background())
}

type stepCounter struct{}

func (stepCounter) Steps() uint32 {
	if err := board.Sensors.Update(drivers.Acceleration); nil != err {
		println("error: " + err.Error())
	}
	return board.Sensors.Steps()
}

func battery() model.Battery {
	state, _, percent := board.Power.Status()
	if percent < 0 {
		percent = 0
	}
	return model.Battery{Percent: uint8(percent), Charging: state == board.Charging}
}

type logger struct{}

func (logger) Infof(template string, args ...interface{}) {
	println("info: " + fmt.Sprintf(template, args...))
}

func halt(err error) {
	for {
		println("error: " + err.Error())
		time.Sleep(time.Second)
	}
}
