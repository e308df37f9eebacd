package dataformat

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func fakeFormatter() *Formatter {
	at := time.Date(2025, time.March, 14, 15, 9, 26, 0, time.UTC)
	return New(clockwork.NewFakeClockAt(at))
}

func TestResolveTimeWithStrftimeFormat(t *testing.T) {
	f := fakeFormatter()
	if got := f.Resolve("time", nil, "%H:%M", ""); got != "15:09" {
		t.Fatalf("got %q, want 15:09", got)
	}
	if got := f.Resolve("time", nil, "%H:%M:%S", ""); got != "15:09:26" {
		t.Fatalf("got %q, want 15:09:26", got)
	}
	if got := f.Resolve("time", nil, "%I:%M %p", ""); got != "03:09 PM" {
		t.Fatalf("got %q, want 03:09 PM", got)
	}
}

func TestResolveTimeDefaultLayout(t *testing.T) {
	f := fakeFormatter()
	if got := f.Resolve("time", nil, "", ""); got != "15:09" {
		t.Fatalf("got %q, want 15:09", got)
	}
}

func TestResolveDate(t *testing.T) {
	f := fakeFormatter()
	if got := f.Resolve("date", nil, "", ""); got != "Fri Mar 14" {
		t.Fatalf("got %q, want Fri Mar 14", got)
	}
	if got := f.Resolve("date", nil, "%Y-%m-%d", ""); got != "2025-03-14" {
		t.Fatalf("got %q, want 2025-03-14", got)
	}
	if got := f.Resolve("date", nil, "%A", ""); got != "Friday" {
		t.Fatalf("got %q, want Friday", got)
	}
}

func TestResolveGoLayoutPassthrough(t *testing.T) {
	f := fakeFormatter()
	if got := f.Resolve("time", nil, "15:04:05", ""); got != "15:09:26" {
		t.Fatalf("got %q, want 15:09:26", got)
	}
}

func TestResolveValueLookup(t *testing.T) {
	f := fakeFormatter()
	values := map[string]any{
		"temperature": 21.56,
		"humidity":    48,
		"city":        "Perth",
	}

	if got := f.Resolve("city", values, "", ""); got != "Perth" {
		t.Fatalf("got %q, want Perth", got)
	}
	if got := f.Resolve("temperature", values, "%.1f°", ""); got != "21.6°" {
		t.Fatalf("got %q, want 21.6°", got)
	}
	if got := f.Resolve("humidity", values, "", ""); got != "48" {
		t.Fatalf("got %q, want 48", got)
	}
}

func TestResolveMissingValueIsEmpty(t *testing.T) {
	f := fakeFormatter()
	if got := f.Resolve("wind", map[string]any{}, "", ""); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
	if got := f.Resolve("wind", nil, "", ""); got != "" {
		t.Fatalf("nil values: got %q, want empty", got)
	}
}

func TestResolveTimezone(t *testing.T) {
	f := fakeFormatter()
	if got := f.Resolve("time", nil, "%H:%M", "UTC"); got != "15:09" {
		t.Fatalf("got %q, want 15:09", got)
	}

	// Unknown zones fall back rather than erroring; the cache must not
	// retry the lookup every call.
	first := f.Resolve("time", nil, "%H:%M", "Mars/Olympus")
	second := f.Resolve("time", nil, "%H:%M", "Mars/Olympus")
	if first != second {
		t.Fatalf("fallback unstable: %q then %q", first, second)
	}
}

func TestTimeLayoutConversion(t *testing.T) {
	cases := []struct {
		format string
		want   string
	}{
		{"", "15:04"},
		{"%H:%M", "15:04"},
		{"%d/%m/%y", "02/01/06"},
		{"%a %b", "Mon Jan"},
		{"3:04 PM", "3:04 PM"},
	}
	for _, c := range cases {
		if got := timeLayout(c.format, "15:04"); got != c.want {
			t.Errorf("timeLayout(%q) = %q, want %q", c.format, got, c.want)
		}
	}
}
