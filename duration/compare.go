package duration

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrIndeterminateComparison reports that two durations are incomparable in XSD value space.
var ErrIndeterminateComparison = errors.New("duration comparison indeterminate")

// referenceTimes are the XSD 1.0 reference dateTimes for duration ordering.
var referenceTimes = []time.Time{
	time.Date(1696, time.September, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1697, time.February, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1903, time.March, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1903, time.July, 1, 0, 0, 0, 0, time.UTC),
}

var (
	secondsPerMinute = decimal.NewFromInt(60)
	secondsPerHour   = decimal.NewFromInt(3600)
	secondsPerDay    = decimal.NewFromInt(86400)
)

// Key is the value-space identity of a duration: a signed month count and a
// signed second count. P1Y and P12M share a key, P1D and PT24H too.
type Key struct {
	Months  int64
	Seconds decimal.Decimal
}

// KeyOf returns the value-space key of d.
func KeyOf(d Duration) Key {
	months := int64(d.Years)*12 + int64(d.Months)
	seconds := d.Seconds.
		Add(decimal.NewFromInt(int64(d.Minutes)).Mul(secondsPerMinute)).
		Add(decimal.NewFromInt(int64(d.Hours)).Mul(secondsPerHour)).
		Add(decimal.NewFromInt(int64(d.Days)).Mul(secondsPerDay))
	if d.Negative {
		months = -months
		seconds = seconds.Neg()
	}
	return Key{Months: months, Seconds: seconds}
}

// Equal reports value-space equality.
func Equal(left, right Duration) bool {
	l, r := KeyOf(left), KeyOf(right)
	return l.Months == r.Months && l.Seconds.Equal(r.Seconds)
}

// Compare orders durations using the XSD 1.0 order relation for duration.
// It returns ErrIndeterminateComparison when the order differs between the
// reference dateTimes.
func Compare(left, right Duration) (int, error) {
	l, r := KeyOf(left), KeyOf(right)
	if l.Months == r.Months {
		return l.Seconds.Cmp(r.Seconds), nil
	}

	sign := 0
	for _, ref := range referenceTimes {
		cmp := endpoint(ref, l).Cmp(endpoint(ref, r))
		if cmp == 0 || (sign != 0 && sign != cmp) {
			return 0, ErrIndeterminateComparison
		}
		sign = cmp
	}
	return sign, nil
}

// endpoint returns the instant ref + k as seconds since the Unix epoch.
// Reference days are always the first of the month, so month arithmetic
// never needs day clamping.
func endpoint(ref time.Time, k Key) decimal.Decimal {
	shifted := time.Date(ref.Year(), ref.Month()+time.Month(k.Months), 1, 0, 0, 0, 0, time.UTC)
	return decimal.NewFromInt(shifted.Unix()).Add(k.Seconds)
}
