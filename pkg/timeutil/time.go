package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// gatewaySecondsLayout is the DD-MM-YYYY:HH:mm:ss prefix of a gateway timestamp.
	// The millisecond suffix is separated by a colon, which time.Parse cannot express.
	gatewaySecondsLayout = "02-01-2006:15:04:05"

	// PaymentResponseLayout is the YYYY-MM-DDTHH:mm:ss layout used in PAYMENTRESPONSE.DATETIME
	PaymentResponseLayout = "2006-01-02T15:04:05"
)

// Now returns the current time in UTC
// Always use this instead of time.Now() to ensure timezone consistency
func Now() time.Time {
	return time.Now().UTC()
}

// ParseDate parses a date string and returns a UTC time
func ParseDate(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatGatewayTimestamp renders t in UTC as DD-MM-YYYY:HH:mm:ss:SSS.
// The result is both sent as DATETIME and fed into the request hash, so it must be byte-exact.
func FormatGatewayTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s:%03d", t.Format(gatewaySecondsLayout), t.Nanosecond()/int(time.Millisecond))
}

// ParseGatewayTimestamp parses a DD-MM-YYYY:HH:mm:ss:SSS value as UTC.
// A value without the millisecond suffix is accepted.
func ParseGatewayTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	head, millis := value, ""
	if len(value) > len(gatewaySecondsLayout) {
		if value[len(gatewaySecondsLayout)] != ':' {
			return time.Time{}, fmt.Errorf("invalid gateway timestamp %q", value)
		}
		head, millis = value[:len(gatewaySecondsLayout)], value[len(gatewaySecondsLayout)+1:]
	}

	t, err := time.Parse(gatewaySecondsLayout, head)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid gateway timestamp %q: %w", value, err)
	}

	if millis != "" {
		// Fraction of a second: ":1" is 100ms, ":05" is 50ms
		if len(millis) > 3 || strings.Trim(millis, "0123456789") != "" {
			return time.Time{}, fmt.Errorf("invalid gateway timestamp milliseconds %q", value)
		}
		ms, err := strconv.Atoi(millis + strings.Repeat("0", 3-len(millis)))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid gateway timestamp milliseconds %q: %w", value, err)
		}
		t = t.Add(time.Duration(ms) * time.Millisecond)
	}

	return t.UTC(), nil
}

// ParsePaymentTimestamp parses the YYYY-MM-DDTHH:mm:ss value returned by payment responses as UTC
func ParsePaymentTimestamp(value string) (time.Time, error) {
	return ParseDate(PaymentResponseLayout, strings.TrimSpace(value))
}
