package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Advertisement is a rotating ad creative, either created directly by an admin
// or derived from a content item flagged "promote as ad".
type Advertisement struct {
	ID               bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title            string         `json:"title" bson:"title"`
	Description      string         `json:"description" bson:"description"`
	Image            string         `json:"image" bson:"image"`
	Link             string         `json:"link" bson:"link"`
	ContentType      string         `json:"content_type,omitempty" bson:"content_type,omitempty"`
	ContentReference *bson.ObjectID `json:"content_reference,omitempty" bson:"content_reference,omitempty"`
	Active           bool           `json:"active" bson:"active"`
	Clicks           int64          `json:"clicks" bson:"clicks"`
	Impressions      int64          `json:"impressions" bson:"impressions"`
	PostedAt         time.Time      `json:"posted_at" bson:"posted_at"`
	UpdatedAt        *time.Time     `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	AdminID          string         `json:"-" bson:"admin_id"`
}

// AdPublic is the reduced field set served by the rotation endpoint.
type AdPublic struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	Clicks      int64  `json:"clicks"`
}

// AdClick is an append-only click event record, never mutated.
type AdClick struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	AdID      bson.ObjectID `json:"ad_id" bson:"ad_id"`
	ClickedAt time.Time     `json:"clicked_at" bson:"clicked_at"`
	UserID    string        `json:"user_id,omitempty" bson:"user_id,omitempty"`
	IPAddress string        `json:"ip_address" bson:"ip_address"`
}
