// Package duration parses, orders and formats xs:duration values.
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// datePattern matches date components in XSD duration format: Y, M, D.
	datePattern = regexp.MustCompile(`(\d+)Y|(\d+)M|(\d+)D`)

	// timePattern matches time components in XSD duration format: H, M, S.
	timePattern = regexp.MustCompile(`(\d+)H|(\d+)M|(\d+(\.\d+)?)S`)

	// durationPattern validates full XSD duration lexical form.
	durationPattern = regexp.MustCompile(`^-?P(\d+Y)?(\d+M)?(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d+)?S)?)?$`)
)

// MaxComponent bounds the year, month, day, hour and minute components so
// that month and second arithmetic over the reference dateTimes stays
// within int64.
const MaxComponent = math.MaxInt32

// Duration is a parsed xs:duration value. All components are non-negative;
// Negative carries the sign of the whole duration.
type Duration struct {
	Seconds  decimal.Decimal
	Years    int
	Months   int
	Days     int
	Hours    int
	Minutes  int
	Negative bool
}

// Parse parses an XSD duration lexical value.
func Parse(s string) (Duration, error) {
	if s == "" {
		return Duration{}, fmt.Errorf("empty duration")
	}

	input := s
	negative := s[0] == '-'
	if negative {
		s = s[1:]
	}

	if s == "" || s[0] != 'P' {
		return Duration{}, fmt.Errorf("duration must start with P")
	}
	s = s[1:]

	datePart := s
	timePart := ""
	sawTimeDesignator := false
	if before, after, ok := strings.Cut(s, "T"); ok {
		sawTimeDesignator = true
		datePart = before
		timePart = after
	}

	if !durationPattern.MatchString(input) {
		return Duration{}, fmt.Errorf("invalid duration format: %s", input)
	}

	var d Duration
	hasDateComponent := false
	hasTimeComponent := false
	parseComponent := func(value, label string) (int, error) {
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, fmt.Errorf("%s value too large", label)
			}
			return 0, fmt.Errorf("invalid %s value: %w", label, err)
		}
		if u > MaxComponent {
			return 0, fmt.Errorf("%s value too large", label)
		}
		return int(u), nil
	}

	for _, match := range datePattern.FindAllStringSubmatch(datePart, -1) {
		var err error
		switch {
		case match[1] != "":
			d.Years, err = parseComponent(match[1], "year")
		case match[2] != "":
			d.Months, err = parseComponent(match[2], "month")
		case match[3] != "":
			d.Days, err = parseComponent(match[3], "day")
		}
		if err != nil {
			return Duration{}, err
		}
		hasDateComponent = true
	}

	for _, match := range timePattern.FindAllStringSubmatch(timePart, -1) {
		var err error
		switch {
		case match[1] != "":
			d.Hours, err = parseComponent(match[1], "hour")
		case match[2] != "":
			d.Minutes, err = parseComponent(match[2], "minute")
		case match[3] != "":
			d.Seconds, err = decimal.NewFromString(match[3])
			if err != nil {
				err = fmt.Errorf("invalid second value: %w", err)
			}
		}
		if err != nil {
			return Duration{}, err
		}
		hasTimeComponent = true
	}

	if !hasDateComponent && !hasTimeComponent {
		return Duration{}, fmt.Errorf("duration must have at least one component")
	}
	if sawTimeDesignator && !hasTimeComponent {
		return Duration{}, fmt.Errorf("time designator present but no time components specified")
	}

	d.Negative = negative && !d.IsZero()
	return d, nil
}

// Validate checks the invariants Parse guarantees for values built by hand.
func (d Duration) Validate() error {
	if d.Years < 0 || d.Months < 0 || d.Days < 0 || d.Hours < 0 || d.Minutes < 0 || d.Seconds.IsNegative() {
		return fmt.Errorf("duration components must be non-negative; use Negative for the sign")
	}
	if d.Years > MaxComponent || d.Months > MaxComponent || d.Days > MaxComponent ||
		d.Hours > MaxComponent || d.Minutes > MaxComponent {
		return fmt.Errorf("duration components must not exceed %d", MaxComponent)
	}
	return nil
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 && d.Hours == 0 && d.Minutes == 0 && d.Seconds.IsZero()
}

// String formats the duration in canonical lexical form.
func (d Duration) String() string {
	var buf strings.Builder
	buf.Grow(32)
	if d.Negative && !d.IsZero() {
		buf.WriteByte('-')
	}
	buf.WriteByte('P')

	hasDate := false
	if d.Years != 0 {
		buf.WriteString(strconv.Itoa(d.Years))
		buf.WriteByte('Y')
		hasDate = true
	}
	if d.Months != 0 {
		buf.WriteString(strconv.Itoa(d.Months))
		buf.WriteByte('M')
		hasDate = true
	}
	if d.Days != 0 {
		buf.WriteString(strconv.Itoa(d.Days))
		buf.WriteByte('D')
		hasDate = true
	}

	hasTime := d.Hours != 0 || d.Minutes != 0 || !d.Seconds.IsZero()
	if !hasDate && !hasTime {
		return "PT0S"
	}
	if !hasTime {
		return buf.String()
	}

	buf.WriteByte('T')
	if d.Hours != 0 {
		buf.WriteString(strconv.Itoa(d.Hours))
		buf.WriteByte('H')
	}
	if d.Minutes != 0 {
		buf.WriteString(strconv.Itoa(d.Minutes))
		buf.WriteByte('M')
	}
	if !d.Seconds.IsZero() {
		buf.WriteString(d.Seconds.String())
		buf.WriteByte('S')
	}
	return buf.String()
}
