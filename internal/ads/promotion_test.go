package ads

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/community-platform/backend/internal/models"
	"github.com/community-platform/backend/pkg/utils"
)

func TestDocStringFallbackChain(t *testing.T) {
	doc := bson.M{
		"company_name": "N/A",
		"name":         "Gopher Bootcamp",
		"title":        "ignored",
	}
	assert.Equal(t, "Gopher Bootcamp", docString(doc, "company_name", "name", "title"))

	assert.Equal(t, "N/A", docString(bson.M{}, "company_name", "name"))
	assert.Equal(t, "N/A", docString(bson.M{"company_name": ""}, "company_name"))
}

func TestDocStringIgnoresNonStrings(t *testing.T) {
	doc := bson.M{
		"name":  42,
		"title": "Fallback Title",
	}
	assert.Equal(t, "Fallback Title", docString(doc, "name", "title"))
}

func TestLinkField(t *testing.T) {
	assert.Equal(t, "https://example.com/apply", linkField(bson.M{"official_link": "https://example.com/apply"}))
	assert.Equal(t, "#", linkField(bson.M{"official_link": "N/A"}))
	assert.Equal(t, "#", linkField(bson.M{}))
}

func TestAdSyncFieldsPreservesCounters(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	contentID := bson.NewObjectID()
	doc := bson.M{"company_name": "Acme", "role": "Backend Engineer", "official_link": "https://acme.dev/jobs"}

	fields := adSyncFields(models.TypeJobs, contentID, doc, "admin", now)

	// Updating an existing ad must not touch counters or the posting time.
	for _, k := range []string{"clicks", "impressions", "posted_at"} {
		assert.NotContains(t, fields, k)
	}
	assert.Equal(t, "Acme", fields["title"])
	assert.Equal(t, true, fields["active"])
	assert.Equal(t, contentID, fields["content_reference"])
	assert.Equal(t, now, fields["updated_at"])
}

func TestAdInsertFieldsZeroCounters(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	base := adSyncFields(models.TypeWorkshops, bson.NewObjectID(), bson.M{"name": "Go Workshop"}, "admin", now)

	fields := adInsertFields(base, now)

	assert.Equal(t, int64(0), fields["clicks"])
	assert.Equal(t, int64(0), fields["impressions"])
	assert.Equal(t, now, fields["posted_at"])
}

func TestAdSyncFieldsTitleFallback(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	fields := adSyncFields(models.TypeCourses, bson.NewObjectID(), bson.M{"name": "N/A"}, "admin", now)
	assert.Equal(t, "Opportunity", fields["title"])
}

func TestDescriptionTruncation(t *testing.T) {
	doc := bson.M{"role": strings.Repeat("x", 200)}

	created := utils.Truncate(docString(doc, "role", "description"), createDescriptionLimit)
	edited := utils.Truncate(docString(doc, "role", "description"), editDescriptionLimit)

	assert.Len(t, created, 100)
	assert.Len(t, edited, 150)
}
