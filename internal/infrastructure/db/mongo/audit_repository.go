package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gatherly/events-api/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository persists role-change records to an append-only collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Insert(ctx context.Context, rec *domain.AuditRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := map[string]any{
		"actor_id":      rec.ActorID,
		"actor_email":   rec.ActorEmail,
		"target_id":     rec.TargetID,
		"target_email":  rec.TargetEmail,
		"previous_role": rec.PreviousRole,
		"new_role":      rec.NewRole,
		"timestamp":     rec.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
