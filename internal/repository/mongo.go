package repository

import (
	"asset-registry-api/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each record as a document whose _id is the record UUID
// string and whose createdAt/updatedAt are native BSON dates.
type MongoStore[T any, P recordPtr[T]] struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over coll.
func NewMongoStore[T any, P recordPtr[T]](coll *mongo.Collection) *MongoStore[T, P] {
	return &MongoStore[T, P]{coll: coll}
}

// NewEmployeeMongoStore creates the MongoDB employee store.
func NewEmployeeMongoStore(db *mongo.Database) EmployeeStore {
	return NewMongoStore[model.Employee](db.Collection(EmployeeTable))
}

// NewSystemMongoStore creates the MongoDB system store.
func NewSystemMongoStore(db *mongo.Database) SystemStore {
	return NewMongoStore[model.System](db.Collection(SystemTable))
}

// BSON dates keep milliseconds
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// List retrieves every record in insertion order. Ids are version 7 UUIDs,
// so their string form sorts by creation.
func (s *MongoStore[T, P]) List(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.coll.Name(), err)
	}
	defer cur.Close(ctx)

	records := []T{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", s.coll.Name(), err)
		}
		rec, err := s.fromDocument(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration error: %w", err)
	}

	return records, nil
}

// Get retrieves a single record by id.
func (s *MongoStore[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc bson.M
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find %s document: %w", s.coll.Name(), err)
	}
	return s.fromDocument(doc)
}

// Create inserts record under a new id.
func (s *MongoStore[T, P]) Create(ctx context.Context, record T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}
	now := mongoNow()
	P(&record).SetID(id)
	P(&record).SetTimestamps(now, now)

	doc, err := toDocument(record, now, now)
	if err != nil {
		return nil, err
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", s.coll.Name(), err)
	}
	return &record, nil
}

// Replace overwrites the document stored under id, carrying over createdAt.
func (s *MongoStore[T, P]) Replace(ctx context.Context, id uuid.UUID, record T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.D{{Key: "_id", Value: id.String()}}

	var existing struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "createdAt", Value: 1}})
	if err := s.coll.FindOne(ctx, filter, opts).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find %s document: %w", s.coll.Name(), err)
	}

	now := mongoNow()
	createdAt := existing.CreatedAt.UTC()
	P(&record).SetID(id)
	P(&record).SetTimestamps(createdAt, now)

	doc, err := toDocument(record, createdAt, now)
	if err != nil {
		return nil, err
	}

	result, err := s.coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to replace %s document: %w", s.coll.Name(), err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrRecordNotFound
	}
	return &record, nil
}

// Delete removes the document stored under id.
func (s *MongoStore[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", s.coll.Name(), err)
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// toDocument converts record to BSON through its JSON form, so the stored
// field names match the API field names.
func toDocument(record interface{}, createdAt, updatedAt time.Time) (bson.D, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert document: %w", err)
	}

	for i := range doc {
		switch doc[i].Key {
		case "createdAt":
			doc[i].Value = createdAt
		case "updatedAt":
			doc[i].Value = updatedAt
		}
	}
	return doc, nil
}

func (s *MongoStore[T, P]) fromDocument(doc bson.M) (*T, error) {
	rawID, _ := doc["_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid %s document id %v: %w", s.coll.Name(), doc["_id"], err)
	}
	createdAt := bsonTime(doc["createdAt"])
	updatedAt := bsonTime(doc["updatedAt"])
	delete(doc, "_id")
	delete(doc, "createdAt")
	delete(doc, "updatedAt")

	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s document %s: %w", s.coll.Name(), id, err)
	}

	var rec T
	if err := json.Unmarshal(data, P(&rec)); err != nil {
		return nil, fmt.Errorf("failed to decode %s document %s: %w", s.coll.Name(), id, err)
	}
	P(&rec).SetID(id)
	P(&rec).SetTimestamps(createdAt, updatedAt)
	return &rec, nil
}

func bsonTime(v interface{}) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	default:
		return time.Time{}
	}
}
