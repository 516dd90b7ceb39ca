// Package clock formats the wall-clock portion of the watchface.
package clock

import (
	"strconv"
	"time"
)

// Text holds the formatted time fields for one redraw of the face.
type Text struct {
	Time string // "%k:%M" or "%l:%M"
	Date string // "%a %d %b"
	AMPM string // "%p", blank in 24-hour mode
}

// Format renders t in either 24-hour or 12-hour style. Hours are padded with a
// leading space rather than a zero.
func Format(t time.Time, clock24h bool) Text {
	hour := t.Hour()
	ampm := "  "
	if !clock24h {
		if ampm = "AM"; hour >= 12 {
			ampm = "PM"
		}
		if hour %= 12; hour == 0 {
			hour = 12
		}
	}
	return Text{
		Time: pad(hour) + ":" + zero(t.Minute()),
		Date: t.Format("Mon 02 Jan"),
		AMPM: ampm,
	}
}

func pad(n int) string {
	if n < 10 {
		return " " + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func zero(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
