package domain

import "time"

// Token is a cached upstream bearer credential. A zero Expiry means the
// token has no tracked expiry and is treated as valid until the next
// explicit authentication or login replaces it.
type Token struct {
	Value  string    `json:"value"`
	Expiry time.Time `json:"expiry,omitempty"`
}

// Valid reports whether the token can still be attached to upstream calls
// at instant now.
func (t Token) Valid(now time.Time) bool {
	if t.Value == "" {
		return false
	}
	return t.Expiry.IsZero() || now.Before(t.Expiry)
}
