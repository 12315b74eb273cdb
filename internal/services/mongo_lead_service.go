package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estately/backend/internal/models"
)

type MongoLeadService struct {
	coll *mongo.Collection
}

func NewMongoLeadService(ctx context.Context, db *mongo.Database) *MongoLeadService {
	coll := db.Collection("leads")

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "property_id", Value: 1}}},
	})

	return &MongoLeadService{coll: coll}
}

func (s *MongoLeadService) Create(ctx context.Context, req *models.CreateLeadRequest) (*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	lead := newLead(req)
	if _, err := s.coll.InsertOne(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *MongoLeadService) List(ctx context.Context, status string) ([]*models.Lead, error) {
	if status != "" && !models.IsValidLeadStatus(status) {
		return nil, ErrInvalidLeadStatus
	}

	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Lead, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoLeadService) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var l models.Lead
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (s *MongoLeadService) UpdateStatus(ctx context.Context, id, status string) (*models.Lead, error) {
	if !models.IsValidLeadStatus(status) {
		return nil, ErrInvalidLeadStatus
	}

	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var l models.Lead
	if err := res.Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &l, nil
}
