package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Audit event kinds.
const (
	AuditRegister = "register"
	AuditLogin    = "login"
	AuditReserve  = "reserve"
)

// AuditEvent is one auth or reservation attempt. Only the email digest is
// recorded, never the address itself.
type AuditEvent struct {
	Kind      string    `bson:"kind" json:"kind"`
	EmailHash string    `bson:"email_hash,omitempty" json:"email_hash,omitempty"`
	UserID    int64     `bson:"user_id,omitempty" json:"user_id,omitempty"`
	IPAddress string    `bson:"ip_address" json:"ip_address"`
	Success   bool      `bson:"success" json:"success"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MongoAuditLog keeps a best-effort trail of auth and reservation attempts
// in MongoDB for the admin activity view. Write failures are the caller's
// choice to ignore; the trail is not load-bearing.
type MongoAuditLog struct {
	coll *mongo.Collection
}

func NewMongoAuditLog(db *mongo.Database) *MongoAuditLog {
	return &MongoAuditLog{coll: db.Collection("audit_events")}
}

func (l *MongoAuditLog) Record(ctx context.Context, ev AuditEvent) error {
	ev.CreatedAt = time.Now().UTC()
	_, err := l.coll.InsertOne(ctx, ev)
	return err
}

// Recent returns the newest audit events, newest first.
func (l *MongoAuditLog) Recent(ctx context.Context, limit int64) ([]AuditEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := l.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []AuditEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

// EnsureAuditIndexes creates the created_at index used by Recent.
func (l *MongoAuditLog) EnsureAuditIndexes(ctx context.Context) error {
	_, err := l.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}
