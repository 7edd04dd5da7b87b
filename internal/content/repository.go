package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/pagination"
)

// Document is a free-form content document. Content collections are
// schemaless; only a handful of fields (posted_at, admin_id, image, the
// boolean flags) have fixed meaning.
type Document = bson.M

// Repository provides CRUD over the content collections, dispatched by the
// closed ContentType set.
type Repository struct {
	db *mongo.Database
}

// NewRepository creates a content repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) collection(t models.ContentType) *mongo.Collection {
	return r.db.Collection(t.Collection())
}

// List returns one page of documents sorted by posting time descending, plus
// the total count. Public reads strip the admin reference via projection.
func (r *Repository) List(ctx context.Context, t models.ContentType, page int, filter Document, public bool) ([]Document, int64, error) {
	coll := r.collection(t)
	if filter == nil {
		filter = Document{}
	}

	var total int64
	var err error
	if len(filter) == 0 {
		total, err = coll.EstimatedDocumentCount(ctx)
	} else {
		total, err = coll.CountDocuments(ctx, filter)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", t, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "posted_at", Value: -1}}).
		SetSkip(pagination.Skip(page)).
		SetLimit(pagination.PageSize)
	if public {
		opts.SetProjection(bson.M{"admin_id": 0})
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", t, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", t, err)
	}
	return nonNilDocs(docs), total, nil
}

// All returns every document matching filter, admin reference stripped when
// public. Used by the unpaginated roadmap/website pages.
func (r *Repository) All(ctx context.Context, t models.ContentType, filter Document, public bool) ([]Document, error) {
	if filter == nil {
		filter = Document{}
	}
	opts := options.Find()
	if public {
		opts.SetProjection(bson.M{"admin_id": 0})
	}
	cursor, err := r.collection(t).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", t, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t, err)
	}
	return nonNilDocs(docs), nil
}

// Get returns a single document by ID.
func (r *Repository) Get(ctx context.Context, t models.ContentType, id string, public bool) (Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOne()
	if public {
		opts.SetProjection(bson.M{"admin_id": 0})
	}
	var doc Document
	err = r.collection(t).FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", t, err)
	}
	return doc, nil
}

// GetField returns a document reduced to a single field.
func (r *Repository) GetField(ctx context.Context, t models.ContentType, id, field string) (Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOne().SetProjection(bson.M{field: 1})
	var doc Document
	err = r.collection(t).FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s field %s: %w", t, field, err)
	}
	return doc, nil
}

// Create inserts a document and returns its new ID.
func (r *Repository) Create(ctx context.Context, t models.ContentType, doc Document) (bson.ObjectID, error) {
	res, err := r.collection(t).InsertOne(ctx, doc)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert %s: %w", t, err)
	}
	return res.InsertedID.(bson.ObjectID), nil
}

// Update applies a $set of fields to a document.
func (r *Repository) Update(ctx context.Context, t models.ContentType, id string, fields Document) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.collection(t).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update %s: %w", t, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a document by ID.
func (r *Repository) Delete(ctx context.Context, t models.ContentType, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := r.collection(t).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete %s: %w", t, err)
	}
	return nil
}

// Related returns up to 3 related items for a detail page, with a reduced
// projection. Jobs relate by job_type; other types by recency alone.
func (r *Repository) Related(ctx context.Context, t models.ContentType, id string, jobType interface{}) ([]Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	filter := Document{"_id": bson.M{"$ne": oid}}
	projection := bson.M{"name": 1, "organizer": 1, "posted_at": 1, "image": 1}
	if t == models.TypeJobs {
		filter["job_type"] = jobType
		projection = bson.M{"company_name": 1, "role": 1, "location": 1, "posted_at": 1, "image": 1}
	}
	opts := options.Find().SetProjection(projection).SetLimit(3)
	cursor, err := r.collection(t).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("related %s: %w", t, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode related %s: %w", t, err)
	}
	return nonNilDocs(docs), nil
}

// Count returns the estimated document count for a content type.
func (r *Repository) Count(ctx context.Context, t models.ContentType) (int64, error) {
	return r.collection(t).EstimatedDocumentCount(ctx)
}

// nonNilDocs replaces a nil result with an empty slice. cursor.All leaves the
// slice nil when nothing matched, which would serialize as null instead of [].
func nonNilDocs(docs []Document) []Document {
	if docs == nil {
		return []Document{}
	}
	return docs
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", models.ErrInvalidID, id)
	}
	return oid, nil
}

// PublicView normalizes a document for public output: ObjectIDs become hex
// strings, BSON datetimes become time.Time, and the admin reference is dropped.
func PublicView(doc Document) Document {
	delete(doc, "admin_id")
	return AdminView(doc)
}

// AdminView normalizes a document for JSON output without stripping fields.
func AdminView(doc Document) Document {
	if id, ok := doc["_id"].(bson.ObjectID); ok {
		doc["_id"] = id.Hex()
	}
	if ref, ok := doc["content_reference"].(bson.ObjectID); ok {
		doc["content_reference"] = ref.Hex()
	}
	for _, k := range [...]string{"posted_at", "updated_at"} {
		if dt, ok := doc[k].(bson.DateTime); ok {
			doc[k] = dt.Time().UTC()
		}
	}
	return doc
}

// PostedTime extracts posted_at from a decoded document. BSON datetimes decode
// as bson.DateTime inside a map, time.Time when round-tripped through JSON.
func PostedTime(doc Document) (time.Time, bool) {
	switch v := doc["posted_at"].(type) {
	case time.Time:
		return v, true
	case bson.DateTime:
		return v.Time(), true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		return t, err == nil
	}
	return time.Time{}, false
}
