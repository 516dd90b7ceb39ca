// Package metric converts raw health readings into the short strings shown on
// the watchface.
//
// All conversions use truncating integer arithmetic in a fixed operation order,
// so that every value fits the narrow text fields of the face and renders
// identically on every tick.
package metric

import (
	"errors"
	"strconv"
	"strings"
)

// Maximum number of printable characters for each text field of the face.
const (
	TimeWidth       = 7
	DateWidth       = 11
	AMPMWidth       = 3
	StepsWidth      = 7
	KcalWidth       = 7
	DistanceWidth   = 7
	ActiveTimeWidth = 7
)

// Unknown is rendered in place of a distance when the preferred measurement
// system is not recognized.
const Unknown = "Unknown"

var (
	ErrUnknownSystem = errors.New("unrecognized measurement system")
)

// System is the user's preferred measurement system for display.
type System uint8

// Constants defining each recognized System.
const (
	SystemUnknown System = iota
	SystemMetric
	SystemImperial
)

func (s System) String() string {
	switch s {
	case SystemMetric:
		return "metric"
	case SystemImperial:
		return "imperial"
	}
	return "unknown"
}

// ParseSystem returns the System named by str, ignoring case.
func ParseSystem(str string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "metric", "km":
		return SystemMetric, nil
	case "imperial", "mi":
		return SystemImperial, nil
	case "", "unknown":
		return SystemUnknown, nil
	}
	return SystemUnknown, ErrUnknownSystem
}

// Raw is a snapshot of today's cumulative health readings.
type Raw struct {
	Steps         int
	ActiveSeconds int
	WalkedMeters  int
	ActiveKcal    int
	RestingKcal   int
}

// Text holds the formatted health strings for one redraw of the face.
type Text struct {
	Steps      string
	Kcal       string
	Distance   string
	ActiveTime string
}

// Logger receives diagnostics emitted while formatting.
// *zap.SugaredLogger satisfies this interface.
type Logger interface {
	Infof(template string, args ...interface{})
}

// Format renders every health field of raw.
func Format(log Logger, raw Raw, system System) Text {
	return Text{
		Steps:      StepCount(raw.Steps),
		Kcal:       Kcal(raw.ActiveKcal, raw.RestingKcal),
		Distance:   Distance(log, raw.WalkedMeters, system),
		ActiveTime: ActiveTime(raw.ActiveSeconds),
	}
}

// StepCount renders steps as a plain integer below 10000, and in abbreviated
// "12.3k" form otherwise. The tenths digit is truncated, never rounded.
func StepCount(steps int) string {
	if steps < 10000 {
		return strconv.Itoa(steps)
	}
	return strconv.Itoa(steps/1000) + "." +
		strconv.Itoa((steps-(steps/1000)*1000)/100) + "k"
}

// ActiveTime renders seconds as "<hours>h <minutes>m".
func ActiveTime(seconds int) string {
	hours := seconds / 3600
	mins := seconds/60 - hours*60
	return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
}

// Distance renders meters in the given measurement system with one truncated
// decimal digit. An unrecognized system renders Unknown and logs a diagnostic
// to log, which may be nil.
func Distance(log Logger, meters int, system System) string {
	switch system {
	case SystemMetric:
		return strconv.Itoa(meters/1000) + "." +
			strconv.Itoa((meters-(meters/1000)*1000)/100) + "km"

	case SystemImperial:
		feet := int(float32(meters) * 3.281)
		// 528 ft is a tenth of a mile
		return strconv.Itoa(feet/5280) + "." +
			strconv.Itoa((feet-(feet/5280)*5280)/528) + "mi"
	}
	if nil != log {
		log.Infof("measurement system %s unknown or does not apply", system)
	}
	return Unknown
}

// Kcal renders the total calories burned today.
func Kcal(active, resting int) string {
	return strconv.Itoa(active + resting)
}

// BatteryFill returns the number of pixel rows to fill, from the bottom, in a
// battery cell of the given height.
func BatteryFill(percent, cellHeight int) int {
	return int(float64(cellHeight) / 100.0 * float64(percent))
}
