package core

// ListOptions carries the offset/limit bounds accepted by every listing
// operation. The zero value returns everything.
type ListOptions struct {
	Limit  int `query:"limit" validate:"omitempty,gte=0"`
	Offset int `query:"offset" validate:"omitempty,gte=0"`
}

func (o ListOptions) IsZero() bool {
	return o.Limit == 0 && o.Offset == 0
}

// Bounds resolves the option into slice bounds over a collection of n items.
func (o ListOptions) Bounds(n int) (lo, hi int) {
	lo = o.Offset
	if lo > n {
		lo = n
	}
	hi = n
	if o.Limit > 0 && lo+o.Limit < n {
		hi = lo + o.Limit
	}
	return lo, hi
}
