// Package jalali converts between the Jalali (Shamsi) and Gregorian
// calendars using the 33-year breakpoint approximation of the Jalali
// leap cycle. All arithmetic is closed-form integer math; there is no
// iteration or search.
package jalali

import "fmt"

// breakpoints are the Jalali years at which the 33-year leap-cycle
// approximation is re-anchored. Conversions are defined for years in
// [breakpoints[0], breakpoints[last]-1].
var breakpoints = [20]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181,
	1210, 1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// MinYear and MaxYear bound the supported Jalali years, inclusive.
const (
	MinYear = -61
	MaxYear = 3177
)

// RangeError reports a Jalali year outside the supported breakpoint table.
type RangeError struct {
	Year int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("jalali: year %d outside supported range [%d, %d]", e.Year, MinYear, MaxYear)
}

// cycle holds the per-year facts derived from the breakpoint table.
type cycle struct {
	leap  int // years since the last leap year; 0 means jy itself is leap
	gy    int // Gregorian year of the first day of jy
	march int // day of March on which Nowruz of jy falls
}

// calc walks the breakpoint table accumulating leap days and locates
// Nowruz of jy in the Gregorian calendar.
func calc(jy int) (cycle, error) {
	if jy < MinYear || jy > MaxYear {
		return cycle{}, &RangeError{Year: jy}
	}

	gy := jy + 621
	leapJ := -14
	jp := breakpoints[0]
	jump := 0

	for i := 1; i < len(breakpoints); i++ {
		jm := breakpoints[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}
	n := jy - jp

	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	// Gregorian leap days up to gy, normalized so the epoch anchor
	// reproduces exactly.
	leapG := gy/4 - (gy/100+1)*3/4 - 150

	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap := ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}

	return cycle{leap: leap, gy: gy, march: march}, nil
}

// IsLeapYear reports whether the Jalali year jy has 30 days in Esfand.
func IsLeapYear(jy int) (bool, error) {
	c, err := calc(jy)
	if err != nil {
		return false, err
	}
	return c.leap == 0, nil
}

// MonthLength returns the number of days in month jm of Jalali year jy.
func MonthLength(jy, jm int) (int, error) {
	switch {
	case jm >= 1 && jm <= 6:
		return 31, nil
	case jm >= 7 && jm <= 11:
		return 30, nil
	case jm == 12:
		leap, err := IsLeapYear(jy)
		if err != nil {
			return 0, err
		}
		if leap {
			return 30, nil
		}
		return 29, nil
	default:
		return 0, fmt.Errorf("jalali: invalid month %d", jm)
	}
}

// IsValidDate reports whether (jy, jm, jd) names a real Jalali day.
// Invalid triples are rejected, never clamped.
func IsValidDate(jy, jm, jd int) bool {
	if jy < MinYear || jy > MaxYear || jm < 1 || jm > 12 || jd < 1 {
		return false
	}
	ml, err := MonthLength(jy, jm)
	if err != nil {
		return false
	}
	return jd <= ml
}

// ToGregorian converts a valid Jalali date to its Gregorian equivalent.
// The triple is validated against the month-length table before any
// conversion arithmetic runs.
func ToGregorian(jy, jm, jd int) (gy, gm, gd int, err error) {
	c, err := calc(jy)
	if err != nil {
		return 0, 0, 0, err
	}
	if jm < 1 || jm > 12 || jd < 1 {
		return 0, 0, 0, fmt.Errorf("jalali: invalid date %d/%d/%d", jy, jm, jd)
	}
	ml, err := MonthLength(jy, jm)
	if err != nil {
		return 0, 0, 0, err
	}
	if jd > ml {
		return 0, 0, 0, fmt.Errorf("jalali: invalid date %d/%d/%d", jy, jm, jd)
	}

	jdn := gregorianToJDN(c.gy, 3, c.march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
	gy, gm, gd = jdnToGregorian(jdn)
	return gy, gm, gd, nil
}

// gregorianToJDN computes the Julian day number of a Gregorian date.
func gregorianToJDN(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	d += -(gy+100100+(gm-8)/6)/100*3/4 + 752
	return d
}

// jdnToGregorian inverts gregorianToJDN in closed form.
func jdnToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := j%1461/4*5 + 308
	gd = i%153/5 + 1
	gm = i/153%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
