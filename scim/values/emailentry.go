package values

// EmailEntry is one element of the RFC 7643 §4.1.2 "emails" multi-valued
// attribute: a validated address plus type/primary metadata.
type EmailEntry struct {
	Value   EmailAddress `json:"value"`
	Type    string       `json:"type,omitempty"`
	Primary bool         `json:"primary,omitempty"`
}

// NewEmailEntry validates the address and wraps it with its metadata.
func NewEmailEntry(address, typ string, primary bool) (EmailEntry, error) {
	addr, err := NewEmailAddress(address)
	if err != nil {
		return EmailEntry{}, err
	}

	return EmailEntry{Value: addr, Type: typ, Primary: primary}, nil
}

// IsPrimary reports whether this element is marked primary.
func (e EmailEntry) IsPrimary() bool {
	return e.Primary
}

// WithPrimary returns a copy of e with Primary set to primary.
func (e EmailEntry) WithPrimary(primary bool) EmailEntry {
	e.Primary = primary
	return e
}
