package request

const (
	DefaultTake = 10
	MaxTake     = 100
)

// ListRequest is the skip/take window of a movie listing.
type ListRequest struct {
	Skip int `json:"skip"`
	Take int `json:"take"`
}

func (p ListRequest) Offset() int {
	if p.Skip < 0 {
		return 0
	}
	return p.Skip
}

// Limit keeps a zero take (an empty page), replaces a negative take with the
// default and caps the rest at MaxTake.
func (p ListRequest) Limit() int {
	if p.Take < 0 {
		return DefaultTake
	}
	if p.Take > MaxTake {
		return MaxTake
	}
	return p.Take
}
