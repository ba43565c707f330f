package domain

import (
	"errors"
	"fmt"
)

// DataUnavailableError indicates that no market data exists for a ticker.
// This is the only fatal condition in an analysis run.
type DataUnavailableError struct {
	Ticker string
}

func (e DataUnavailableError) Error() string {
	return fmt.Sprintf("no market data available for ticker %s", e.Ticker)
}

// IsDataUnavailable reports whether err is a DataUnavailableError.
func IsDataUnavailable(err error) bool {
	var target DataUnavailableError
	return errors.As(err, &target)
}
