package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Username  string             `json:"username" bson:"username"`
	Image     string             `json:"image" bson:"image"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type Location struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zipcode string `json:"zipcode" bson:"zipcode"`
}

// Rates holds the listing prices. Every period is optional, a listing is
// expected to fill in at least one.
type Rates struct {
	Weekly  *float64 `json:"weekly,omitempty" bson:"weekly,omitempty"`
	Monthly *float64 `json:"monthly,omitempty" bson:"monthly,omitempty"`
	Nightly *float64 `json:"nightly,omitempty" bson:"nightly,omitempty"`
}

type SellerInfo struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

type Property struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	Type        string             `json:"type" bson:"type"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Location    Location           `json:"location" bson:"location"`
	Beds        int                `json:"beds" bson:"beds"`
	Baths       float64            `json:"baths" bson:"baths"`
	SquareFeet  int                `json:"square_feet" bson:"square_feet"`
	Amenities   []string           `json:"amenities" bson:"amenities"`
	Rates       Rates              `json:"rates" bson:"rates"`
	SellerInfo  SellerInfo         `json:"seller_info" bson:"seller_info"`
	Images      []string           `json:"images" bson:"images"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Session is the identity resolved from the caller's session token.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
