package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post is a single document in the posts collection. Seq is a
// human-facing monotonic id allocated from an atomic counter, kept
// alongside the ObjectID the database assigns.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Seq      int64              `bson:"id" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Content  string             `bson:"content" json:"content"`
	Category string             `bson:"category,omitempty" json:"category"`
	Image    string             `bson:"image" json:"image"`
	UserID   primitive.ObjectID `bson:"user" json:"user"`
	Date     int64              `bson:"date" json:"date"`
}

// PostWithAuthor is the aggregation projection joining a post with
// its owner's public profile fields.
type PostWithAuthor struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Seq          int64              `bson:"id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Content      string             `bson:"content" json:"content"`
	Category     string             `bson:"category,omitempty" json:"category"`
	Image        string             `bson:"image" json:"image"`
	Date         int64              `bson:"date" json:"date"`
	Username     string             `bson:"username" json:"username"`
	ProfileImage string             `bson:"profileImage" json:"profileImage"`
}
