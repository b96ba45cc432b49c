package application

import (
	"regexp"
	"strconv"
)

var expiryDaysRegexp = regexp.MustCompile(`^(\d+)days$`)

// ParseExpiry converts an expiry override, either a number of seconds or
// "<N>days", into an absolute unix timestamp relative to now.
func ParseExpiry(expiry string, now int64) (int64, error) {
	if m := expiryDaysRegexp.FindStringSubmatch(expiry); m != nil {
		days, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, ErrExpiryInvalid
		}
		return now + days*60*60*24, nil
	}
	seconds, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return 0, ErrExpiryInvalid
	}
	return now + seconds, nil
}
