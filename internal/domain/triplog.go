package domain

import "time"

// TripLogRow is one line of the trip log export: a flat, denormalized view of
// a visit that reached the road, with the driver's name resolved and the
// distance derived from the odometer pair.
type TripLogRow struct {
	VisitID       VisitID
	VisitDate     time.Time
	VisitTime     string
	CustomerName  string
	RequesterID   ProfileID
	DriverID      ProfileID
	DriverName    string // empty when the driver profile is no longer in the directory
	Status        Status
	StartOdometer OdometerReading
	EndOdometer   *OdometerReading // nil while the trip is in progress
	Distance      *OdometerReading // nil while the trip is in progress
}
