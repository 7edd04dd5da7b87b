package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonNilDocsSerializesEmptyList(t *testing.T) {
	// A nil slice is what cursor decoding leaves behind when nothing matched;
	// it must reach clients as [] rather than null.
	var docs []Document
	raw, err := json.Marshal(docs)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	raw, err = json.Marshal(nonNilDocs(docs))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestNonNilDocsKeepsResults(t *testing.T) {
	docs := []Document{{"name": "Gopher Meetup"}}
	assert.Equal(t, docs, nonNilDocs(docs))
}
