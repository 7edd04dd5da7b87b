package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentType(t *testing.T) {
	for _, ct := range AllContentTypes() {
		parsed, err := ParseContentType(string(ct))
		require.NoError(t, err)
		assert.Equal(t, ct, parsed)
		assert.NotEmpty(t, ct.Collection())
	}

	_, err := ParseContentType("podcasts")
	assert.ErrorIs(t, err, ErrInvalidContentType)
	_, err = ParseContentType("")
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestParseDetailType(t *testing.T) {
	ct, err := ParseDetailType("job")
	require.NoError(t, err)
	assert.Equal(t, TypeJobs, ct)

	// Detail routes use singular names; the plural is rejected.
	_, err = ParseDetailType("jobs")
	assert.ErrorIs(t, err, ErrInvalidContentType)
	_, err = ParseDetailType("roadmap")
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestCollectionMapping(t *testing.T) {
	assert.Equal(t, "jobs_internships", TypeJobs.Collection())
	assert.Equal(t, "advertisements", TypeAds.Collection())
}

func TestPromotable(t *testing.T) {
	assert.True(t, TypeJobs.Promotable())
	assert.True(t, TypeHackathons.Promotable())
	assert.False(t, TypeWebsites.Promotable())
	assert.False(t, TypeAds.Promotable())
}

func TestSearchFields(t *testing.T) {
	assert.Equal(t, []string{"company_name", "role", "job_type"}, TypeJobs.SearchFields())
	assert.Equal(t, []string{"name", "instructor"}, TypeCourses.SearchFields())
	assert.Equal(t, []string{"name", "organizer"}, TypeWorkshops.SearchFields())
	assert.Nil(t, TypeRoadmaps.SearchFields())
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "job", TypeJobs.Singular())
	assert.Equal(t, "hackathon", TypeHackathons.Singular())
	assert.Equal(t, "websites", TypeWebsites.Singular())
}
