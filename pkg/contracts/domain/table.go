package domain

// Record is one parsed input line. There is no schema: column meaning is
// positional and depends on the operation reading it.
type Record []string

// Field returns the field at index i and whether the record is long enough to have it.
func (r Record) Field(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Table is an ordered sequence of records sharing a nominal column layout.
type Table []Record

// Body returns the table without its header and footer rows.
// Header and footer only exist when the table has more than two rows.
func (t Table) Body() Table {
	if len(t) > 2 {
		return t[1 : len(t)-1]
	}
	return t
}
