package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a single document in the users collection. Password holds
// the bcrypt hash, never the raw password, and is excluded from JSON.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	Password     string               `bson:"password" json:"-"`
	ProfileImage string               `bson:"profileImage,omitempty" json:"profileImage"`
	Posts        []primitive.ObjectID `bson:"posts" json:"posts"`
	Date         int64                `bson:"date" json:"date"`
}
