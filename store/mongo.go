package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkwell/models"
)

// NewMongo wires the user and post stores over the given database.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Users: &mongoUserStore{users: db.Collection("users")},
		Posts: &mongoPostStore{
			posts:    db.Collection("posts"),
			counters: db.Collection("counters"),
		},
	}
}

type mongoUserStore struct {
	users *mongo.Collection
}

func (s *mongoUserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *mongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUserStore) AppendPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"posts": postID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoPostStore struct {
	posts    *mongo.Collection
	counters *mongo.Collection
}

// NextSeq increments the posts counter document atomically, creating
// it on first use.
func (s *mongoPostStore) NextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "posts"},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (s *mongoPostStore) Create(ctx context.Context, post *models.Post) error {
	_, err := s.posts.InsertOne(ctx, post)
	return err
}

func (s *mongoPostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *mongoPostStore) Update(ctx context.Context, post *models.Post) error {
	res, err := s.posts.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// authorLookup joins the owning user and projects the public author
// fields next to the post fields.
func authorLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDetails"},
		}}},
		{{Key: "$unwind", Value: "$userDetails"}},
		{{Key: "$project", Value: bson.D{
			{Key: "id", Value: 1},
			{Key: "title", Value: 1},
			{Key: "content", Value: 1},
			{Key: "category", Value: 1},
			{Key: "image", Value: 1},
			{Key: "date", Value: 1},
			{Key: "username", Value: "$userDetails.username"},
			{Key: "profileImage", Value: "$userDetails.profileImage"},
		}}},
	}
}

func (s *mongoPostStore) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.PostWithAuthor, error) {
	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.PostWithAuthor{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *mongoPostStore) List(ctx context.Context, page, limit int64) ([]models.PostWithAuthor, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
	}
	pipeline = append(pipeline, authorLookup()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$skip", Value: (page - 1) * limit}},
		bson.D{{Key: "$limit", Value: limit}},
	)

	posts, err := s.aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *mongoPostStore) Latest(ctx context.Context, limit int64) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *mongoPostStore) ByCategory(ctx context.Context, category string) ([]models.PostWithAuthor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "category", Value: category}}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
	}
	pipeline = append(pipeline, authorLookup()...)
	return s.aggregate(ctx, pipeline)
}

func (s *mongoPostStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.PostWithAuthor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}}},
	}
	pipeline = append(pipeline, authorLookup()...)
	return s.aggregate(ctx, pipeline)
}
