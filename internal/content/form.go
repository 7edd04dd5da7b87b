package content

import (
	"net/url"

	"github.com/community-platform/backend/pkg/utils"
)

// booleanFields are the "on"/absent checkbox fields. Absent means false on
// both create and edit, so stored documents always carry all three flags.
var booleanFields = [...]string{"certification", "active", "is_project"}

// formOnly are form fields that control behavior but are never stored.
var formOnly = map[string]bool{
	"promote_as_ad": true,
	"image":         true,
}

// DocumentFromForm builds a content document from submitted form values.
// Every string field is HTML-escaped and blank values become "N/A"; the
// requirements field is split on commas; checkbox fields become booleans.
func DocumentFromForm(form url.Values) Document {
	doc := Document{}
	for key, vals := range form {
		if formOnly[key] {
			continue
		}
		v := ""
		if len(vals) > 0 {
			v = vals[0]
		}
		doc[key] = utils.OrDefault(utils.Sanitize(v))
	}
	for _, b := range booleanFields {
		doc[b] = form.Get(b) == "on"
	}
	if req, ok := doc["requirements"].(string); ok && req != utils.DefaultValue {
		doc["requirements"] = utils.SplitRequirements(req)
	}
	return doc
}

// PromoteRequested reports whether the admin checked "promote as ad".
func PromoteRequested(form url.Values) bool {
	return form.Get("promote_as_ad") == "on"
}
