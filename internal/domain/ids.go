package domain

import "github.com/google/uuid"

// VisitID identifies a site visit. It is a distinct type from ProfileID so a
// visit id can never be passed where an actor or driver is expected.
type VisitID uuid.UUID

// NewVisitID returns a random (v4) VisitID.
func NewVisitID() VisitID { return VisitID(uuid.New()) }

// ParseVisitID parses the canonical string form of a VisitID.
func ParseVisitID(s string) (VisitID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return VisitID{}, err
	}
	return VisitID(u), nil
}

func (id VisitID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id VisitID) String() string  { return uuid.UUID(id).String() }
func (id VisitID) IsZero() bool    { return id == VisitID{} }

func (id VisitID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *VisitID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ProfileID identifies a person in the user directory: a requester, an
// approver, or a driver.
type ProfileID uuid.UUID

// NewProfileID returns a random (v4) ProfileID.
func NewProfileID() ProfileID { return ProfileID(uuid.New()) }

// ParseProfileID parses the canonical string form of a ProfileID.
func ParseProfileID(s string) (ProfileID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ProfileID{}, err
	}
	return ProfileID(u), nil
}

func (id ProfileID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id ProfileID) String() string  { return uuid.UUID(id).String() }
func (id ProfileID) IsZero() bool    { return id == ProfileID{} }

func (id ProfileID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ProfileID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// OdometerReading is a vehicle odometer value in whole kilometres.
type OdometerReading int64
