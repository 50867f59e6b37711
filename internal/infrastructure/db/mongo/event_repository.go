package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gatherly/events-api/internal/core/domain"
)

const eventsCollection = "events"

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

type mongoParticipant struct {
	UserID       primitive.ObjectID `bson:"user"`
	RegisteredAt time.Time          `bson:"registered_at"`
}

type mongoEvent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description,omitempty"`
	Start        time.Time          `bson:"start"`
	End          *time.Time         `bson:"end,omitempty"`
	OrganizerID  primitive.ObjectID `bson:"organizer"`
	Capacity     *int               `bson:"capacity,omitempty"`
	Participants []mongoParticipant `bson:"participants"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toMongoEvent(ev *domain.Event) (*mongoEvent, error) {
	organizer, err := primitive.ObjectIDFromHex(ev.OrganizerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	doc := &mongoEvent{
		Title:        ev.Title,
		Description:  ev.Description,
		Start:        ev.Start,
		End:          ev.End,
		OrganizerID:  organizer,
		Capacity:     ev.Capacity,
		Participants: make([]mongoParticipant, 0, len(ev.Participants)),
		CreatedAt:    ev.CreatedAt,
		UpdatedAt:    ev.UpdatedAt,
	}
	for _, p := range ev.Participants {
		uid, err := primitive.ObjectIDFromHex(p.UserID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		doc.Participants = append(doc.Participants, mongoParticipant{UserID: uid, RegisteredAt: p.RegisteredAt})
	}
	return doc, nil
}

func (me *mongoEvent) toDomain() *domain.Event {
	ev := &domain.Event{
		ID:           me.ID.Hex(),
		Title:        me.Title,
		Description:  me.Description,
		Start:        me.Start.UTC(),
		End:          me.End,
		OrganizerID:  me.OrganizerID.Hex(),
		Capacity:     me.Capacity,
		Participants: make([]domain.Participant, 0, len(me.Participants)),
		CreatedAt:    me.CreatedAt.UTC(),
		UpdatedAt:    me.UpdatedAt.UTC(),
	}
	for _, p := range me.Participants {
		ev.Participants = append(ev.Participants, domain.Participant{
			UserID:       p.UserID.Hex(),
			RegisteredAt: p.RegisteredAt.UTC(),
		})
	}
	return ev
}

func (r *EventRepository) Create(ctx context.Context, ev *domain.Event) (*domain.Event, error) {
	doc, err := toMongoEvent(ev)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *ev
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

// List returns one page of events sorted by start ascending and the total count.
func (r *EventRepository) List(ctx context.Context, page, limit int) ([]*domain.Event, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	skip := int64((page - 1) * limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "start", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Event
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, 0, fmt.Errorf("decode event: %w", err)
		}
		items = append(items, me.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return items, total, nil
}

// Update replaces the stored document whole. Read-modify-write without a
// guard: concurrent writers can interleave (accepted, see ports.EventRepository).
func (r *EventRepository) Update(ctx context.Context, ev *domain.Event) error {
	oid, err := primitive.ObjectIDFromHex(ev.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	doc, err := toMongoEvent(ev)
	if err != nil {
		return err
	}
	doc.ID = oid

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// EnsureIndexes creates the supporting indexes on the events collection.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "organizer", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
