package content

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/community-platform/backend/internal/models"
)

const searchLimit = 5

// Search runs the free-text query independently over each searchable
// collection, concatenating up to 5 results per collection. There is no
// global ranking across collections. An empty query returns an empty list.
func (r *Repository) Search(ctx context.Context, query string, logger *zap.Logger) []Document {
	query = strings.TrimSpace(query)
	results := []Document{}
	if query == "" {
		return results
	}

	for _, t := range models.SearchableTypes() {
		docs, err := r.textSearch(ctx, t, query)
		if err != nil {
			// Text index may be missing; fall back silently to regex matching.
			logger.Debug("text search fallback", zap.String("type", string(t)), zap.Error(err))
			docs, err = r.regexSearch(ctx, t, query)
			if err != nil {
				logger.Warn("search failed", zap.String("type", string(t)), zap.Error(err))
				continue
			}
		}
		for _, doc := range docs {
			doc = PublicView(doc)
			doc["type"] = t.Singular()
			results = append(results, doc)
		}
	}
	return results
}

// textSearch queries the collection's text index, ranked by relevance score.
func (r *Repository) textSearch(ctx context.Context, t models.ContentType, query string) ([]Document, error) {
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}, "admin_id": 0}).
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}).
		SetLimit(searchLimit)
	cursor, err := r.collection(t).Find(ctx, bson.M{"$text": bson.M{"$search": query}}, opts)
	if err != nil {
		return nil, fmt.Errorf("text search %s: %w", t, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode text search %s: %w", t, err)
	}
	return docs, nil
}

// regexSearch matches the query case-insensitively against the collection's
// known search fields.
func (r *Repository) regexSearch(ctx context.Context, t models.ContentType, query string) ([]Document, error) {
	fields := t.SearchFields()
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": query, "$options": "i"}})
	}
	opts := options.Find().
		SetProjection(bson.M{"admin_id": 0}).
		SetLimit(searchLimit)
	cursor, err := r.collection(t).Find(ctx, bson.M{"$or": or}, opts)
	if err != nil {
		return nil, fmt.Errorf("regex search %s: %w", t, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode regex search %s: %w", t, err)
	}
	return docs, nil
}
