package stmt

// Record is one result row: column names in result order mapped to scalar
// values (string, int64, float64, bool, time.Time or nil).
type Record struct {
	columns []string
	values  []any
}

// NewRecord pairs columns with values. Driver byte slices are stored as strings.
func NewRecord(columns []string, values []any) Record {
	r := Record{
		columns: make([]string, len(columns)),
		values:  make([]any, len(columns)),
	}
	copy(r.columns, columns)
	for i := range r.columns {
		if i < len(values) {
			r.values[i] = normalize(values[i])
		}
	}
	return r
}

func normalize(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}

func (r Record) Columns() []string {
	return append([]string(nil), r.columns...)
}

func (r Record) Values() []any {
	return append([]any(nil), r.values...)
}

func (r Record) Len() int {
	return len(r.columns)
}

// Get returns the value of the first column named col.
func (r Record) Get(col string) (any, bool) {
	for i, c := range r.columns {
		if c == col {
			return r.values[i], true
		}
	}
	return nil, false
}

// Map returns the record as an unordered map.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}
