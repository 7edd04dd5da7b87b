package ads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/community-platform/backend/internal/models"
)

// SampleSize is the number of ads returned per rotation request.
const SampleSize = 5

// Repository handles advertisement and click-event persistence.
type Repository struct {
	ads    *mongo.Collection
	clicks *mongo.Collection
}

// NewRepository creates an ads repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		ads:    db.Collection("advertisements"),
		clicks: db.Collection("ad_clicks"),
	}
}

// SampleActive returns up to SampleSize active ads, uniformly sampled with a
// reduced public field set. Stored click/impression counts do not weight the
// sample.
func (r *Repository) SampleActive(ctx context.Context) ([]models.AdPublic, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"active": true}}},
		{{Key: "$sample", Value: bson.M{"size": SampleSize}}},
		{{Key: "$project", Value: bson.M{
			"title":       1,
			"description": 1,
			"image":       1,
			"link":        1,
			"clicks":      1,
		}}},
	}
	cursor, err := r.ads.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample ads: %w", err)
	}
	defer cursor.Close(ctx)

	var raw []struct {
		ID          bson.ObjectID `bson:"_id"`
		Title       string        `bson:"title"`
		Description string        `bson:"description"`
		Image       string        `bson:"image"`
		Link        string        `bson:"link"`
		Clicks      int64         `bson:"clicks"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode ads: %w", err)
	}

	out := make([]models.AdPublic, 0, len(raw))
	for _, a := range raw {
		pub := models.AdPublic{
			ID:          a.ID.Hex(),
			Title:       a.Title,
			Description: a.Description,
			Image:       a.Image,
			Link:        a.Link,
			Clicks:      a.Clicks,
		}
		if pub.Title == "" {
			pub.Title = "Opportunity"
		}
		if pub.Link == "" {
			pub.Link = "#"
		}
		out = append(out, pub)
	}
	return out, nil
}

// IncrementImpressions adds one impression to an ad's counter.
func (r *Repository) IncrementImpressions(ctx context.Context, id string) error {
	return r.increment(ctx, id, "impressions")
}

// IncrementClicks adds one click to an ad's counter.
func (r *Repository) IncrementClicks(ctx context.Context, id string) error {
	return r.increment(ctx, id, "clicks")
}

func (r *Repository) increment(ctx context.Context, id, field string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", models.ErrInvalidID, id)
	}
	res, err := r.ads.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RecordClick appends a click event to the append-only log.
func (r *Repository) RecordClick(ctx context.Context, adID, userID, ipAddress string) error {
	oid, err := bson.ObjectIDFromHex(adID)
	if err != nil {
		return fmt.Errorf("%w: %q", models.ErrInvalidID, adID)
	}
	_, err = r.clicks.InsertOne(ctx, models.AdClick{
		AdID:      oid,
		ClickedAt: time.Now().UTC(),
		UserID:    userID,
		IPAddress: ipAddress,
	})
	if err != nil {
		return fmt.Errorf("record click: %w", err)
	}
	return nil
}

// Insert stores a new advertisement.
func (r *Repository) Insert(ctx context.Context, ad *models.Advertisement) error {
	res, err := r.ads.InsertOne(ctx, ad)
	if err != nil {
		return fmt.Errorf("insert ad: %w", err)
	}
	ad.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// FindIDByContent returns the ID of the ad referencing a content item, if any.
// At most one promoting ad exists per content reference.
func (r *Repository) FindIDByContent(ctx context.Context, contentID bson.ObjectID) (bson.ObjectID, bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	var doc struct {
		ID bson.ObjectID `bson:"_id"`
	}
	err := r.ads.FindOne(ctx, bson.M{"content_reference": contentID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bson.ObjectID{}, false, nil
	}
	if err != nil {
		return bson.ObjectID{}, false, fmt.Errorf("find ad by content: %w", err)
	}
	return doc.ID, true, nil
}

// UpdateByID applies a $set to an ad, preserving all untouched fields
// (notably the click/impression counters).
func (r *Repository) UpdateByID(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	_, err := r.ads.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update ad: %w", err)
	}
	return nil
}

// DeleteByContent removes every ad referencing a content item, returning how
// many were deleted.
func (r *Repository) DeleteByContent(ctx context.Context, contentID bson.ObjectID) (int64, error) {
	res, err := r.ads.DeleteMany(ctx, bson.M{"content_reference": contentID})
	if err != nil {
		return 0, fmt.Errorf("delete ads by content: %w", err)
	}
	return res.DeletedCount, nil
}

// ExistsForContent reports whether an ad references the content item.
func (r *Repository) ExistsForContent(ctx context.Context, contentID bson.ObjectID) (bool, error) {
	_, found, err := r.FindIDByContent(ctx, contentID)
	return found, err
}

// Stats used by the admin dashboard.

// CountActive returns the number of active ads.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	return r.ads.CountDocuments(ctx, bson.M{"active": true})
}

// CountClicks returns the estimated size of the click-event log.
func (r *Repository) CountClicks(ctx context.Context) (int64, error) {
	return r.clicks.EstimatedDocumentCount(ctx)
}
