package models

import (
	"errors"
	"fmt"
)

// Typed repository errors surfaced to the HTTP layer.
var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidID          = errors.New("invalid id")
	ErrNotFound           = errors.New("not found")
)

// ContentType identifies which document collection a request targets.
type ContentType string

const (
	TypeJobs       ContentType = "jobs"
	TypeWorkshops  ContentType = "workshops"
	TypeCourses    ContentType = "courses"
	TypeHackathons ContentType = "hackathons"
	TypeRoadmaps   ContentType = "roadmaps"
	TypeWebsites   ContentType = "websites"
	TypeAds        ContentType = "ads"
)

// collections maps every content type to its MongoDB collection name.
// The map is the single source of truth; anything not in it is rejected.
var collections = map[ContentType]string{
	TypeJobs:       "jobs_internships",
	TypeWorkshops:  "workshops",
	TypeCourses:    "courses",
	TypeHackathons: "hackathons",
	TypeRoadmaps:   "roadmaps",
	TypeWebsites:   "websites",
	TypeAds:        "advertisements",
}

// detailTypes maps the singular path segments used by detail/apply routes.
var detailTypes = map[string]ContentType{
	"job":       TypeJobs,
	"workshop":  TypeWorkshops,
	"course":    TypeCourses,
	"hackathon": TypeHackathons,
}

// ParseContentType validates a path segment against the closed content type set.
func ParseContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if _, ok := collections[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
	return t, nil
}

// ParseDetailType validates the singular type names used by /detail and /apply.
func ParseDetailType(s string) (ContentType, error) {
	t, ok := detailTypes[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
	return t, nil
}

// Collection returns the MongoDB collection name for the content type.
func (t ContentType) Collection() string {
	return collections[t]
}

// Promotable reports whether edits to this type manage a linked advertisement.
func (t ContentType) Promotable() bool {
	switch t {
	case TypeJobs, TypeWorkshops, TypeCourses, TypeHackathons:
		return true
	}
	return false
}

// Searchable reports whether global search covers this type.
// Search and the public listing cache cover the same four collections.
func (t ContentType) Searchable() bool {
	return t.Promotable()
}

// Singular returns the singular name used as the "type" tag in search results.
func (t ContentType) Singular() string {
	for s, ct := range detailTypes {
		if ct == t {
			return s
		}
	}
	return string(t)
}

// SearchFields returns the regex fallback fields for global search.
func (t ContentType) SearchFields() []string {
	switch t {
	case TypeJobs:
		return []string{"company_name", "role", "job_type"}
	case TypeCourses:
		return []string{"name", "instructor"}
	case TypeWorkshops, TypeHackathons:
		return []string{"name", "organizer"}
	}
	return nil
}

// AllContentTypes returns the closed set of content types.
func AllContentTypes() []ContentType {
	return []ContentType{TypeJobs, TypeWorkshops, TypeCourses, TypeHackathons, TypeRoadmaps, TypeWebsites, TypeAds}
}

// SearchableTypes returns the types covered by global search, in search order.
func SearchableTypes() []ContentType {
	return []ContentType{TypeJobs, TypeWorkshops, TypeCourses, TypeHackathons}
}
