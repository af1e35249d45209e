package models

import "time"

// UserAccount holds the access-code state for a phone number.
// AccessCode is empty once the code has been consumed.
type UserAccount struct {
	PhoneNumber string    `bson:"_id" json:"phoneNumber"`
	AccessCode  string    `bson:"access_code" json:"-"`
	UpdatedAt   time.Time `bson:"updated_at" json:"-"`
}
