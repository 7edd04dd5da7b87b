package content

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentFromForm(t *testing.T) {
	form := url.Values{}
	form.Set("company_name", "Acme <b>Corp</b>")
	form.Set("role", "Backend Engineer")
	form.Set("location", "")
	form.Set("requirements", "Go, MongoDB, ,Redis")
	form.Set("certification", "on")
	form.Set("promote_as_ad", "on")

	doc := DocumentFromForm(form)

	assert.Equal(t, "Acme &lt;b&gt;Corp&lt;/b&gt;", doc["company_name"])
	assert.Equal(t, "Backend Engineer", doc["role"])
	assert.Equal(t, "N/A", doc["location"])
	assert.Equal(t, []string{"Go", "MongoDB", "Redis"}, doc["requirements"])

	// promote_as_ad controls behavior and is never stored.
	_, stored := doc["promote_as_ad"]
	assert.False(t, stored)
}

func TestDocumentFromFormBooleans(t *testing.T) {
	form := url.Values{}
	form.Set("name", "GopherCon Workshop")
	form.Set("active", "on")

	doc := DocumentFromForm(form)

	// Checkbox fields are always present: "on" => true, absent => false.
	assert.Equal(t, true, doc["active"])
	assert.Equal(t, false, doc["certification"])
	assert.Equal(t, false, doc["is_project"])
}

func TestDocumentFromFormSentinelRequirements(t *testing.T) {
	form := url.Values{}
	form.Set("requirements", "  ")

	doc := DocumentFromForm(form)

	// Blank requirements stay as the sentinel, not an empty list.
	assert.Equal(t, "N/A", doc["requirements"])
}

func TestPromoteRequested(t *testing.T) {
	form := url.Values{}
	assert.False(t, PromoteRequested(form))

	form.Set("promote_as_ad", "on")
	require.True(t, PromoteRequested(form))

	form.Set("promote_as_ad", "true")
	assert.False(t, PromoteRequested(form))
}
