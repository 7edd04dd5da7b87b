package content

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestFilterFromQueryEmpty(t *testing.T) {
	query := FilterFromQuery(url.Values{}, time.Now())
	assert.Empty(t, query)
}

func TestFilterFromQueryLocationRegex(t *testing.T) {
	params := url.Values{}
	params.Set("location", "bangalore")

	query := FilterFromQuery(params, time.Now())

	require.Contains(t, query, "location")
	assert.Equal(t, bson.M{"$regex": "bangalore", "$options": "i"}, query["location"])
}

func TestFilterFromQueryDateWindows(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		date string
		want time.Time
	}{
		{"24h", now.Add(-24 * time.Hour)},
		{"week", now.AddDate(0, 0, -7)},
		{"month", now.AddDate(0, 0, -30)},
	}
	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			params := url.Values{}
			params.Set("date", tc.date)

			query := FilterFromQuery(params, now)

			require.Contains(t, query, "posted_at")
			assert.Equal(t, bson.M{"$gte": tc.want}, query["posted_at"])
		})
	}
}

func TestFilterFromQueryUnknownDateIgnored(t *testing.T) {
	params := url.Values{}
	params.Set("date", "year")

	query := FilterFromQuery(params, time.Now())
	assert.NotContains(t, query, "posted_at")
}

func TestFilterFromQueryConjunction(t *testing.T) {
	params := url.Values{}
	params.Set("location", "remote")
	params.Set("job_type", "internship")
	params.Set("experience", "fresher")
	params.Set("price", "free")

	query := FilterFromQuery(params, time.Now())

	assert.Len(t, query, 4)
	assert.Equal(t, "internship", query["job_type"])
	assert.Equal(t, "fresher", query["required_experience"])
	assert.Equal(t, "free", query["price"])
}
