package ads

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/utils"
)

// Ad description limits. Create truncates harder than edit, matching the
// listing card the ad was originally designed for.
const (
	createDescriptionLimit = 100
	editDescriptionLimit   = 150
)

// PromoteOnCreate inserts a new advertisement derived from freshly created
// content. Counters start at zero.
func (r *Repository) PromoteOnCreate(ctx context.Context, t models.ContentType, contentID bson.ObjectID, doc bson.M, adminID string) error {
	now := time.Now().UTC()
	ad := &models.Advertisement{
		Title:            docString(doc, "company_name", "name", "title"),
		Description:      utils.Truncate(docString(doc, "role", "description"), createDescriptionLimit),
		Image:            stringField(doc, "image"),
		Link:             linkField(doc),
		ContentType:      string(t),
		ContentReference: &contentID,
		Active:           true,
		PostedAt:         now,
		AdminID:          adminID,
	}
	return r.Insert(ctx, ad)
}

// SyncOnEdit reconciles the promoting ad after a content edit. With the
// promote flag set it updates the existing ad in place (counters preserved)
// or inserts a fresh one; with the flag cleared it deletes any ad referencing
// the content. Returns a flash-style summary of what happened.
func (r *Repository) SyncOnEdit(ctx context.Context, t models.ContentType, contentID bson.ObjectID, doc bson.M, adminID string, promote bool) (string, error) {
	if !promote {
		deleted, err := r.DeleteByContent(ctx, contentID)
		if err != nil {
			return "", err
		}
		if deleted > 0 {
			return "ad removed", nil
		}
		return "", nil
	}

	now := time.Now().UTC()
	fields := adSyncFields(t, contentID, doc, adminID, now)

	existingID, found, err := r.FindIDByContent(ctx, contentID)
	if err != nil {
		return "", err
	}
	if found {
		if err := r.UpdateByID(ctx, existingID, fields); err != nil {
			return "", err
		}
		return "ad updated", nil
	}

	if _, err := r.ads.InsertOne(ctx, adInsertFields(fields, now)); err != nil {
		return "", err
	}
	return "ad created", nil
}

// adSyncFields builds the $set applied to a promoting ad on edit. The counter
// and posting-time fields are deliberately absent so updating an existing ad
// in place preserves its clicks and impressions.
func adSyncFields(t models.ContentType, contentID bson.ObjectID, doc bson.M, adminID string, now time.Time) bson.M {
	title := docString(doc, "company_name", "name")
	if title == utils.DefaultValue {
		title = "Opportunity"
	}
	return bson.M{
		"title":             title,
		"description":       utils.Truncate(docString(doc, "role", "description"), editDescriptionLimit),
		"image":             stringField(doc, "image"),
		"link":              linkField(doc),
		"content_type":      string(t),
		"content_reference": contentID,
		"active":            true,
		"updated_at":        now,
		"admin_id":          adminID,
	}
}

// adInsertFields extends the sync fields for a brand-new ad: counters start
// at zero and the posting time is set.
func adInsertFields(fields bson.M, now time.Time) bson.M {
	fields["clicks"] = int64(0)
	fields["impressions"] = int64(0)
	fields["posted_at"] = now
	return fields
}

// docString returns the first non-empty, non-sentinel value among keys,
// falling back to "N/A".
func docString(doc bson.M, keys ...string) string {
	for _, k := range keys {
		if v := stringField(doc, k); v != "" && v != utils.DefaultValue {
			return v
		}
	}
	return utils.DefaultValue
}

func stringField(doc bson.M, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func linkField(doc bson.M) string {
	if v := stringField(doc, "official_link"); v != "" && v != utils.DefaultValue {
		return v
	}
	return "#"
}
