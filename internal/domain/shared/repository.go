package shared

// Paging defaults used by every list endpoint
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Filter represents query filter options
type Filter struct {
	Offset   int
	Limit    int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Limit:   DefaultLimit,
		Filters: make(map[string]any),
	}
}

// Normalize clamps paging values into their allowed ranges
func (f Filter) Normalize() Filter {
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	return f
}

// With returns a copy of the filter with an extra key/value condition
func (f Filter) With(key string, value any) Filter {
	filters := make(map[string]any, len(f.Filters)+1)
	for k, v := range f.Filters {
		filters[k] = v
	}
	filters[key] = value
	f.Filters = filters
	return f
}
