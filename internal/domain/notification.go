package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is the severity a notification is rendered with.
type Category string

const (
	CategoryInfo    Category = "info"
	CategorySuccess Category = "success"
	CategoryWarning Category = "warning"
	CategoryError   Category = "error"
)

// EntitySiteVisit is the related_entity_type carried by every notification
// this service emits.
const EntitySiteVisit = "site_visit"

// Notification is a message addressed to one profile.
// The JSON form is the payload published to live subscribers.
type Notification struct {
	ID                uuid.UUID `json:"id"`
	RecipientID       ProfileID `json:"recipientId"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Category          Category  `json:"category"`
	RelatedEntityType string    `json:"relatedEntityType"`
	RelatedEntityID   uuid.UUID `json:"relatedEntityId"`
	Read              bool      `json:"read"`
	CreatedAt         time.Time `json:"createdAt"`
}
