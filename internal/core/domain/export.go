package domain

// Sheet is one tab of an exported workbook. Cells are already formatted.
type Sheet struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Workbook is a named set of sheets handed to a spreadsheet writer.
type Workbook struct {
	FileName string  `json:"fileName"`
	Sheets   []Sheet `json:"sheets"`
}

// ExportResult describes a finished export.
type ExportResult struct {
	FileName string   `json:"fileName"`
	Location string   `json:"location"` // Spreadsheet URL, or a memory key
	RowCount int      `json:"rowCount"`
	Workbook Workbook `json:"workbook"`
	AuditLog AuditLog `json:"auditLog"`
}
