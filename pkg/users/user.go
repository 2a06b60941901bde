package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the model for a registered user
type User struct {
	ID                     primitive.ObjectID `json:"id" bson:"_id"`
	Name                   string             `json:"name" bson:"name" validate:"required,min=2"`
	Email                  string             `json:"email" bson:"email" validate:"required,email"`
	Password               string             `json:"-" bson:"password" validate:"required,min=6"`
	EmailVerified          bool               `json:"emailVerified" bson:"emailVerified"`
	EmailVerificationToken string             `json:"-" bson:"emailVerificationToken,omitempty"`
	CreatedAt              time.Time          `json:"createdAt" bson:"createdAt" validate:"isdefault"`
	LastModifiedAt         time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt" validate:"isdefault"`
}

// UserLogin is the view of a user for a login request
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
