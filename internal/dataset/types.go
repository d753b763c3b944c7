// Package dataset loads the local World Bank indicators CSV and renders the
// read-only resource views (schema, country list, per-country indicators).
package dataset

// Column type names reported by the schema resource.
const (
	TypeInt64   = "Int64"
	TypeFloat64 = "Float64"
	TypeString  = "String"
)

// Columns the resource views depend on.
const (
	ColumnCountryCode = "countryiso3code"
	ColumnCountryName = "country"
)

// Dataset is the parsed CSV: column names, their inferred types, and typed
// rows. Cell values are int64, float64, string, or nil for empty cells.
// Rows are immutable once loaded; views only filter and project them.
type Dataset struct {
	Columns []string
	Types   []string
	Rows    [][]any
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Height returns the number of rows.
func (d *Dataset) Height() int {
	return len(d.Rows)
}

// CountryPair is one distinct (code, name) entry from the dataset.
type CountryPair struct {
	Code any
	Name any
}
