package clipview

import "sort"

// SortKey selects the field clips are ordered by.
type SortKey string

// Sort keys.
const (
	SortByScore     SortKey = "score"
	SortByDuration  SortKey = "duration"
	SortByCreatedAt SortKey = "created_at"
)

// SortOrder selects the sort direction.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterSpec describes a filtered, ordered view over a clip collection.
// It is passed by value into Evaluate and never mutated.
//
// Favorited is tri-state: a true value keeps only favorited clips; false or
// nil applies no favorited filtering. There is no "non-favorited only" mode,
// matching the favorites-only toggle it models.
type FilterSpec struct {
	MinScore  int
	MaxScore  int
	Favorited *bool
	SortBy    SortKey
	SortOrder SortOrder
}

// DefaultFilterSpec returns the spec used before the user touches any
// filter control: the full score range, sorted by score descending.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		MinScore:  0,
		MaxScore:  100,
		SortBy:    SortByScore,
		SortOrder: SortDesc,
	}
}

// Normalize returns a copy with an inverted score range swapped into order.
// Evaluate assumes a normalized spec; callers that build specs from raw
// user input should normalize before evaluating.
func (s FilterSpec) Normalize() FilterSpec {
	if s.MinScore > s.MaxScore {
		s.MinScore, s.MaxScore = s.MaxScore, s.MinScore
	}
	return s
}

// Evaluate returns the clips passing the spec's filters, ordered by its sort
// settings. The input slice is never mutated. Filtering happens strictly
// before sorting, so sort settings never change which clips are returned.
// Ties preserve the input's relative order (stable sort).
func Evaluate(clips []Clip, spec FilterSpec) []Clip {
	var filtered []Clip
	for _, c := range clips {
		if c.ViralityScore < spec.MinScore || c.ViralityScore > spec.MaxScore {
			continue
		}
		if spec.Favorited != nil && *spec.Favorited && !c.Favorited {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := sortValue(filtered[i], spec.SortBy), sortValue(filtered[j], spec.SortBy)
		if spec.SortOrder == SortDesc {
			return a > b
		}
		return a < b
	})

	return filtered
}

// sortValue projects a clip onto the numeric axis named by the sort key.
func sortValue(c Clip, key SortKey) float64 {
	switch key {
	case SortByDuration:
		return c.Duration
	case SortByCreatedAt:
		// Unix seconds plus fractional nanos; UnixNano overflows for the
		// zero time a clip without created_at decodes to.
		return float64(c.CreatedAt.Unix()) + float64(c.CreatedAt.Nanosecond())/1e9
	default:
		return float64(c.ViralityScore)
	}
}
