package content

import (
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FilterFromQuery builds a conjunctive query from the whitelisted filter
// parameters. Unknown parameters are ignored.
func FilterFromQuery(params url.Values, now time.Time) Document {
	query := Document{}

	if loc := params.Get("location"); loc != "" {
		query["location"] = bson.M{"$regex": loc, "$options": "i"}
	}
	if price := params.Get("price"); price != "" {
		query["price"] = price
	}
	switch params.Get("date") {
	case "24h":
		query["posted_at"] = bson.M{"$gte": now.Add(-24 * time.Hour)}
	case "week":
		query["posted_at"] = bson.M{"$gte": now.AddDate(0, 0, -7)}
	case "month":
		query["posted_at"] = bson.M{"$gte": now.AddDate(0, 0, -30)}
	}
	if jobType := params.Get("job_type"); jobType != "" {
		query["job_type"] = jobType
	}
	if exp := params.Get("experience"); exp != "" {
		query["required_experience"] = exp
	}
	return query
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
