package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffboard/statusboard/internal/core/domain"
)

const (
	collectionPersonnel   = "personnel"
	collectionSeedMarkers = "seed_markers"
	seedMarkerID          = "personnel_starter"
)

type RosterRepository struct {
	col     *mongo.Collection
	markers *mongo.Collection
}

func NewRosterRepository(db *mongo.Database) *RosterRepository {
	return &RosterRepository{
		col:     db.Collection(collectionPersonnel),
		markers: db.Collection(collectionSeedMarkers),
	}
}

type personnelDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Specialty   string             `bson:"specialty"`
	Status      string             `bson:"status"`
	LastUpdated *time.Time         `bson:"last_updated,omitempty"`
}

// ListAll returns every personnel record in natural store order.
func (r *RosterRepository) ListAll(ctx context.Context) ([]domain.PersonnelRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	records := make([]domain.PersonnelRecord, 0)
	for cur.Next(ctx) {
		var doc personnelDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, domain.PersonnelRecord{
			ID:          doc.ID.Hex(),
			Name:        doc.Name,
			Specialty:   doc.Specialty,
			Status:      domain.Status(doc.Status),
			LastUpdated: doc.LastUpdated,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RosterRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.D{})
}

// UpdateStatus sets the record's status and stamps last_updated from the
// server clock via $currentDate, so the timestamp is never client-supplied.
func (r *RosterRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecordNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set":         bson.M{"status": string(status)},
			"$currentDate": bson.M{"last_updated": true},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// InsertStarter creates one starter record. The write goes through an
// upsert so last_updated can be resolved by the server clock on insert.
func (r *RosterRepository) InsertStarter(ctx context.Context, rec domain.StarterRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": primitive.NewObjectID()},
		bson.M{
			"$setOnInsert": bson.M{
				"name":      rec.Name,
				"specialty": rec.Specialty,
				"status":    string(rec.Status),
			},
			"$currentDate": bson.M{"last_updated": true},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// ClaimSeedMarker atomically claims the one-shot seeding guard document.
// Exactly one caller ever observes true; everyone else races into the
// existing marker and gets false.
func (r *RosterRepository) ClaimSeedMarker(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.markers.UpdateOne(ctx,
		bson.M{"_id": seedMarkerID},
		bson.M{"$setOnInsert": bson.M{"claimed_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// A concurrent claimant can trigger a duplicate key error on the
		// upsert; that simply means we lost the race.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

// EnsureIndexes creates necessary indexes on the personnel collection.
func (r *RosterRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	return err
}
