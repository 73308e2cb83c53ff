package model

// GenericRecord is a schema-agnostic map for any data source
type GenericRecord map[string]interface{}

// CostDataset is the parsed spreadsheet handed to the ranking calculator:
// ordered column headers plus one GenericRecord per row. The calculator
// treats it as read-only.
type CostDataset struct {
	Columns []string        `json:"columns"`
	Rows    []GenericRecord `json:"rows"`
}

// NewCostDataset builds a dataset from headers and rows.
func NewCostDataset(columns []string, rows []GenericRecord) *CostDataset {
	return &CostDataset{Columns: columns, Rows: rows}
}

// HasColumn reports whether the dataset declares the given column header.
func (d *CostDataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RowCount returns the number of data rows.
func (d *CostDataset) RowCount() int {
	return len(d.Rows)
}
