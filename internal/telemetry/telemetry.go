// Package telemetry validates the odometer readings a driver captures when a
// trip starts and ends, and derives the distance travelled.
package telemetry

import (
	"fmt"

	"github.com/pkordes/site-visits/internal/domain"
)

// ValidateStart checks the reading captured on start_trip.
func ValidateStart(reading domain.OdometerReading) error {
	if reading <= 0 {
		return domain.NewValidationError("start_odometer", "must be greater than 0")
	}
	return nil
}

// ValidateEnd checks the reading captured on complete_trip against the
// stored start reading. The message carries the start value so the UI can
// show the minimum acceptable reading.
func ValidateEnd(start, end domain.OdometerReading) error {
	if end <= start {
		return domain.NewValidationError("end_odometer", fmt.Sprintf("must be greater than %d", start))
	}
	return nil
}

// Distance returns end − start for a visit that has both readings.
func Distance(v domain.Visit) (domain.OdometerReading, bool) {
	if v.StartOdometer == nil || v.EndOdometer == nil {
		return 0, false
	}
	return *v.EndOdometer - *v.StartOdometer, true
}

// FormatDistance renders a distance the way notifications show it.
func FormatDistance(d domain.OdometerReading) string {
	return fmt.Sprintf("%d km", d)
}
