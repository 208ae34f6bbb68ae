package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultAuditDbName = "gogols"
	AuditColName       = "admin_audit"
	AuditRetention     = 90 * 24 * time.Hour
)

type AuditAction string

const (
	AuditStatusChange  AuditAction = "reservation.status"
	AuditDelete        AuditAction = "reservation.delete"
	AuditContentUpdate AuditAction = "content.update"
	AuditImageUpload   AuditAction = "image.upload"
	AuditImageToggle   AuditAction = "image.toggle"
	AuditLogin         AuditAction = "admin.login"
)

type AuditEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Resource  string             `bson:"resource,omitempty" json:"resource,omitempty"`
	TargetID  string             `bson:"target_id,omitempty" json:"target_id,omitempty"`
	Actor     string             `bson:"actor" json:"actor"`
	Details   map[string]string  `bson:"details,omitempty" json:"details,omitempty"`
	At        time.Time          `bson:"at" json:"at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"-"`
}

type AuditRepo interface {
	RecordAudit(ctx context.Context, entry *AuditEntry) error
	ListAudit(ctx context.Context, limit int64) ([]*AuditEntry, error)
	EnsureIndexes(ctx context.Context) error
}

func (e *AuditEntry) BeforeCreate() {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	e.ExpiresAt = e.At.Add(AuditRetention)
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// EnsureIndexes creates the TTL index that expires audit entries after AuditRetention.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, AuditColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetExpireAfterSeconds(0).
				SetName("expires_at_ttl"),
		},
		{
			Keys: bson.D{
				{Key: "resource", Value: 1},
				{Key: "target_id", Value: 1},
			},
			Options: options.Index().SetName("resource_target_idx"),
		},
		{
			Keys:    bson.D{{Key: "at", Value: -1}},
			Options: options.Index().SetName("at_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) RecordAudit(ctx context.Context, entry *AuditEntry) error {
	col, err := mdb.GetCollection(ctx, AuditColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}
	entry.BeforeCreate()
	if _, err := col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListAudit(ctx context.Context, limit int64) ([]*AuditEntry, error) {
	col, err := mdb.GetCollection(ctx, AuditColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*AuditEntry
	for cursor.Next(ctx) {
		var e AuditEntry
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("error decoding audit entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return entries, nil
}
