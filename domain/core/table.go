package core

// Row holds one sheet row, keyed by normalized header.
type Row map[string]string

// Get returns the cell under the given normalized header, or "" when the
// column is absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is one loaded revision of the serviceability sheet: normalized
// headers in source column order plus string-valued rows. A table is built
// whole by one load and only read afterward.
type Table struct {
	Headers []string
	Rows    []Row

	index map[string]int
}

// NewTable creates a table from normalized headers and rows.
func NewTable(headers []string, rows []Row) *Table {
	return &Table{Headers: headers, Rows: rows}
}

// HasHeader reports whether the named column exists.
func (t *Table) HasHeader(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// AddSyntheticColumn appends a column holding the same value in every row.
// The loader uses it to default unresolved service columns to "no".
func (t *Table) AddSyntheticColumn(name, value string) {
	if !t.HasHeader(name) {
		t.Headers = append(t.Headers, name)
	}
	for _, row := range t.Rows {
		row[name] = value
	}
}

// ProjectPincodes rewrites the given column to its digits-only projection
// in every row and indexes rows by the projected key. The first row wins
// when a key repeats.
func (t *Table) ProjectPincodes(column string) {
	t.index = make(map[string]int, len(t.Rows))
	for i, row := range t.Rows {
		key := DigitsOnly(row[column])
		row[column] = key
		if _, seen := t.index[key]; !seen {
			t.index[key] = i
		}
	}
}

// RowByPincode returns the row stored under a digits-only pincode key.
func (t *Table) RowByPincode(pin string) (Row, bool) {
	if t.index == nil {
		return nil, false
	}
	i, ok := t.index[pin]
	if !ok {
		return nil, false
	}
	return t.Rows[i], true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
