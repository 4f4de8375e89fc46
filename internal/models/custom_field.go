package models

// CustomFieldConfig is stored as the JSONB config column.
type CustomFieldConfig struct {
	Options []string `json:"options,omitempty"`
}

// CustomField represents a row of the custom_fields table.
type CustomField struct {
	FieldID   string            `db:"field_id"`
	OwnerID   string            `db:"owner_id"`
	FieldKey  string            `db:"field_key"`
	FieldName string            `db:"field_name"`
	FieldType string            `db:"field_type"`
	Config    CustomFieldConfig `db:"config"`
	IsActive  bool              `db:"is_active"`
	SortOrder int               `db:"sort_order"`
	AuditFields
}
