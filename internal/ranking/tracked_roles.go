package ranking

import (
	"encoding/json"
	"strconv"
)

// ParseTrackedRoles normalizes the tracked-role field of a stored profile.
// Storage has accumulated three shapes over time: a native list, a
// JSON-encoded string, and no value at all. Anything that cannot be decoded
// collapses to an empty set, which excludes the candidate from every
// leaderboard; there is no error path.
func ParseTrackedRoles(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(v))
		for _, id := range v {
			if id != "" {
				out = append(out, id)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if id := roleID(item); id != "" {
				out = append(out, id)
			}
		}
		return out
	case string:
		var decoded []any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return nil
		}
		return ParseTrackedRoles(decoded)
	default:
		return nil
	}
}

// roleID coerces one decoded element to a role id. Legacy rows stored numeric
// ids, which json decodes as float64.
func roleID(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
