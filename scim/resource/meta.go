package resource

import "time"

// Meta is the server-maintained RFC 7643 §3.1 "meta" complex attribute.
type Meta struct {
	ResourceType string
	Created      time.Time
	LastModified time.Time
	Version      string
	Location     string
}

func (m Meta) toJSON() map[string]any {
	out := map[string]any{
		"resourceType": m.ResourceType,
		"created":      m.Created.UTC().Format(time.RFC3339),
		"lastModified": m.LastModified.UTC().Format(time.RFC3339),
	}

	if m.Version != "" {
		out["version"] = m.Version
	}

	if m.Location != "" {
		out["location"] = m.Location
	}

	return out
}

// toJSONForVersioning omits meta.version and meta.lastModified, the two
// fields the canonical-for-versioning rule excludes from the hash input.
func (m Meta) toJSONForVersioning() map[string]any {
	out := map[string]any{
		"resourceType": m.ResourceType,
		"created":      m.Created.UTC().Format(time.RFC3339),
	}

	if m.Location != "" {
		out["location"] = m.Location
	}

	return out
}
