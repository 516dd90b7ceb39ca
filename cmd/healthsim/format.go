package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ardnew/healthmetrics/clock"
	"github.com/ardnew/healthmetrics/metric"
	"github.com/ardnew/healthmetrics/model"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Print the text fields of the watchface",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, at, err := setup(cmd)
		if err != nil {
			return err
		}
		simulate(p, at, &textDisplay{w: cmd.OutOrStdout(), log: log})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

// textDisplay writes the fields of each running frame as text.
type textDisplay struct {
	w   io.Writer
	log metric.Logger
}

func (d *textDisplay) Update(data model.Model) error {
	if data.Status != model.StatusRunning {
		return nil
	}
	when := clock.Format(data.Time, data.Clock24h)
	stat := metric.Format(d.log, data.Health, data.System)
	bluetooth := "connected"
	if !data.Connected {
		bluetooth = "disconnected"
	}
	_, err := fmt.Fprintf(d.w,
		"time:     %s %s\ndate:     %s\nsteps:    %s\nkcal:     %s\ndistance: %s\nact time: %s\nbattery:  %d%%\nphone:    %s\n",
		when.Time, when.AMPM, when.Date,
		stat.Steps, stat.Kcal, stat.Distance, stat.ActiveTime,
		data.Battery.Percent, bluetooth)
	return err
}
