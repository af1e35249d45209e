package models

import "time"

// GeneratedContent is one saved batch of generated captions or ideas.
type GeneratedContent struct {
	ID          string    `bson:"_id" json:"id"`
	PhoneNumber string    `bson:"phone_number" json:"phoneNumber"`
	Topic       string    `bson:"topic" json:"topic"`
	Data        []string  `bson:"data" json:"data"`
	CreatedAt   time.Time `bson:"created_at" json:"-"`
}
