package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estately/backend/internal/models"
)

const mongoTimeout = 10 * time.Second

type MongoPropertyService struct {
	coll *mongo.Collection
}

func NewMongoPropertyService(ctx context.Context, db *mongo.Database) *MongoPropertyService {
	coll := db.Collection("properties")

	// Best-effort indexes.
	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
	})

	return &MongoPropertyService{coll: coll}
}

func (s *MongoPropertyService) List(ctx context.Context) ([]*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Property, 0)
	for cur.Next(ctx) {
		var p models.Property
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		normalizeDecoded(&p)
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (s *MongoPropertyService) GetByID(ctx context.Context, id string) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	return s.find(ctx, id)
}

func (s *MongoPropertyService) Create(ctx context.Context, userID string, in *models.PropertyInput) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	now := time.Now().UTC()
	p := &models.Property{
		ID:        uuid.New().String(),
		CreatedBy: userID,
		CreatedAt: now,
	}
	if err := applyInput(p, in, now); err != nil {
		return nil, err
	}
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *MongoPropertyService) Update(ctx context.Context, id string, in *models.PropertyInput) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyInput(p, in, time.Now().UTC()); err != nil {
		return nil, err
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrPropertyNotFound
	}
	return p, nil
}

func (s *MongoPropertyService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (s *MongoPropertyService) SetFeatured(ctx context.Context, id string, featured bool) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"featured": featured, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var p models.Property
	if err := res.Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	normalizeDecoded(&p)
	return &p, nil
}

func (s *MongoPropertyService) find(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	normalizeDecoded(&p)
	return &p, nil
}

func normalizeDecoded(p *models.Property) {
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if p.MediaFiles == nil {
		p.MediaFiles = []models.MediaFile{}
	}
}
