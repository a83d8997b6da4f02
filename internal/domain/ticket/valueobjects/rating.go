package valueobjects

import "fmt"

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// RatingKind tells which side of a dual rating has been set.
type RatingKind string

const (
	RatingUnset      RatingKind = "unset"
	RatingClientOnly RatingKind = "client_only"
	RatingOverridden RatingKind = "overridden"
)

// Rating is a priority or severity carried as a client-reported value plus
// an optional internal override. The zero value is unset. The internal
// value, once present, always wins.
type Rating struct {
	client   *int
	internal *int
}

func validRating(v int) error {
	if v < MinRating || v > MaxRating {
		return fmt.Errorf("rating must be between %d and %d, got %d", MinRating, MaxRating, v)
	}
	return nil
}

// ClientRating is a rating reported by the customer only.
func ClientRating(v int) (Rating, error) {
	if err := validRating(v); err != nil {
		return Rating{}, err
	}
	return Rating{client: &v}, nil
}

// ReconstructRating rebuilds a rating from stored columns without
// re-validating historical values.
func ReconstructRating(client, internal *int) Rating {
	return Rating{client: client, internal: internal}
}

// Override returns a copy with the internal value set.
func (r Rating) Override(v int) (Rating, error) {
	if err := validRating(v); err != nil {
		return r, err
	}
	return Rating{client: r.client, internal: &v}, nil
}

// WithClient returns a copy with the client value replaced; an existing
// override is kept.
func (r Rating) WithClient(v int) (Rating, error) {
	if err := validRating(v); err != nil {
		return r, err
	}
	return Rating{client: &v, internal: r.internal}, nil
}

func (r Rating) Kind() RatingKind {
	switch {
	case r.internal != nil:
		return RatingOverridden
	case r.client != nil:
		return RatingClientOnly
	default:
		return RatingUnset
	}
}

func (r Rating) Client() *int   { return copyInt(r.client) }
func (r Rating) Internal() *int { return copyInt(r.internal) }

// Effective is internal ?? client ?? DefaultRating.
func (r Rating) Effective() int {
	if r.internal != nil {
		return *r.internal
	}
	if r.client != nil {
		return *r.client
	}
	return DefaultRating
}

// RatingLabel names a rating value, 1 being the most urgent.
func RatingLabel(v int) string {
	switch v {
	case 1:
		return "critical"
	case 2:
		return "high"
	case 3:
		return "medium"
	case 4:
		return "low"
	case 5:
		return "trivial"
	}
	return "unknown"
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
