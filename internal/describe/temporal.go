package describe

import (
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the layout of time.Time display strings.
const TimeLayout = "2006-01-02 15:04:05 -0700"

// FormatTime formats t as "YYYY-MM-DD HH:MM:SS ±HHMM" in its own location.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatDuration formats d as "<y>y <mo>m <d>d <h>h <mi>m <s>s".
//
// A duration is an absolute span of time, so years and months are always zero
// and days are 24 hours long. Fractional seconds are kept, e.g. "6.5s".
func FormatDuration(d time.Duration) string {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		// The minimum duration has no positive counterpart.
		if d == time.Duration(-1<<63) {
			d = time.Duration(1<<63 - 1)
		} else {
			d = -d
		}
	}

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute

	b.WriteString("0y 0m ")
	b.WriteString(strconv.FormatInt(int64(days), 10))
	b.WriteString("d ")
	b.WriteString(strconv.FormatInt(int64(hours), 10))
	b.WriteString("h ")
	b.WriteString(strconv.FormatInt(int64(minutes), 10))
	b.WriteString("m ")
	b.WriteString(strconv.FormatInt(int64(d/time.Second), 10))
	if frac := int64(d % time.Second); frac != 0 {
		digits := strconv.FormatInt(frac, 10)
		b.WriteByte('.')
		b.WriteString(strings.Repeat("0", 9-len(digits)))
		b.WriteString(strings.TrimRight(digits, "0"))
	}
	b.WriteByte('s')
	return b.String()
}
