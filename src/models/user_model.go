package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"password"`
	Gender    string             `json:"gender" bson:"gender"`
	Bio       string             `json:"bio" bson:"bio"`
	Skills    []string           `json:"skills" bson:"skills"`
	Age       int                `json:"age,omitempty" bson:"age,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive"`

	ResetToken       string    `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpiry time.Time `json:"-" bson:"resetTokenExpiry,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserSafe is the profile subset shared with other users.
type UserSafe struct {
	Id        primitive.ObjectID `json:"id" bson:"_id"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Gender    string             `json:"gender" bson:"gender"`
	Bio       string             `json:"bio,omitempty" bson:"bio"`
	Skills    []string           `json:"skills,omitempty" bson:"skills"`
}

// SafeProjection limits user reads to the fields in UserSafe.
func SafeProjection() bson.M {
	return bson.M{
		"firstName": 1,
		"lastName":  1,
		"gender":    1,
		"bio":       1,
		"skills":    1,
	}
}

// ValidGender reports whether g is an accepted gender value.
func ValidGender(g string) bool {
	switch g {
	case "Male", "Female", "Others":
		return true
	}
	return false
}
