// Package dataformat is the default data-value formatter behind the
// engine's DataResolver boundary. It turns a data source key plus the
// dataValues map supplied by the integration layer into display text;
// time and date sources honor a layout and timezone.
package dataformat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// Formatter resolves data sources. Live and preview renders share one
// path; preview simply passes a snapshot of values.
type Formatter struct {
	clock clockwork.Clock
	zones map[string]*time.Location
}

func New(clock clockwork.Clock) *Formatter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Formatter{
		clock: clock,
		zones: make(map[string]*time.Location),
	}
}

// Resolve formats the value for source. The "time" and "date" sources are
// computed from the clock; anything else is looked up in values.
func (f *Formatter) Resolve(source string, values map[string]any, format, timezone string) string {
	switch source {
	case "time":
		layout := timeLayout(format, "15:04")
		return f.now(timezone).Format(layout)
	case "date":
		layout := timeLayout(format, "Mon Jan 2")
		return f.now(timezone).Format(layout)
	}

	v, ok := values[source]
	if !ok {
		return ""
	}
	if format != "" && strings.Contains(format, "%") {
		return fmt.Sprintf(format, v)
	}
	return fmt.Sprint(v)
}

func (f *Formatter) now(timezone string) time.Time {
	now := f.clock.Now()
	if timezone == "" {
		return now
	}
	loc, ok := f.zones[timezone]
	if !ok {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			log.Warnf("unknown timezone %q, using local", timezone)
			loc = time.Local
		}
		f.zones[timezone] = loc
	}
	return now.In(loc)
}

// timeLayout converts the template-facing strftime-like tokens into a Go
// layout, passing Go layouts through untouched.
var strftimeMap = []struct{ from, to string }{
	{"%H", "15"},
	{"%I", "03"},
	{"%M", "04"},
	{"%S", "05"},
	{"%p", "PM"},
	{"%d", "02"},
	{"%m", "01"},
	{"%Y", "2006"},
	{"%y", "06"},
	{"%a", "Mon"},
	{"%A", "Monday"},
	{"%b", "Jan"},
	{"%B", "January"},
}

func timeLayout(format, fallback string) string {
	if format == "" {
		return fallback
	}
	if !strings.Contains(format, "%") {
		return format
	}
	out := format
	for _, m := range strftimeMap {
		out = strings.ReplaceAll(out, m.from, m.to)
	}
	return out
}
