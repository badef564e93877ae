package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

// CountryCode is the default region for customer phone numbers.
var CountryCode = "IN"

var (
	storeLocOnce sync.Once
	storeLoc     *time.Location
)

// StoreLocation returns the restaurant's timezone (STORE_TIMEZONE env,
// default Asia/Kolkata). Token days roll over at midnight in this location.
func StoreLocation() *time.Location {
	storeLocOnce.Do(func() {
		tz := strings.TrimSpace(os.Getenv("STORE_TIMEZONE"))
		if tz == "" {
			tz = "Asia/Kolkata"
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			loc = time.Local
		}
		storeLoc = loc
	})
	return storeLoc
}

// DateUTC returns t's calendar date in the store timezone, normalized to
// midnight UTC. MySQL DATE columns round-trip through the driver in UTC, so
// values built this way compare stably.
func DateUTC(t time.Time) time.Time {
	local := t.In(StoreLocation())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err // Phone number is invalid
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil
}

// ParseDecimal converts a string to a decimal.Decimal value.
func ParseDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
