package domain

// CustomFieldType is the value type of a user-defined transaction attribute.
type CustomFieldType string

const (
	FieldText         CustomFieldType = "text"
	FieldNumber       CustomFieldType = "number"
	FieldDate         CustomFieldType = "date"
	FieldSingleSelect CustomFieldType = "single_select"
	FieldMultiSelect  CustomFieldType = "multi_select"
)

// IsSelect reports whether values must come from the configured options.
func (t CustomFieldType) IsSelect() bool {
	return t == FieldSingleSelect || t == FieldMultiSelect
}

// IsValid reports whether t is a known field type.
func (t CustomFieldType) IsValid() bool {
	switch t {
	case FieldText, FieldNumber, FieldDate, FieldSingleSelect, FieldMultiSelect:
		return true
	}
	return false
}

// CustomFieldConfig holds type-specific settings.
type CustomFieldConfig struct {
	Options []string `json:"options,omitempty"`
}

// CustomField is a typed attribute attachable to INCOME/EXPENSE transactions.
// Values live in Transaction.CustomFields keyed by FieldKey.
type CustomField struct {
	FieldID   string            `json:"fieldID"`
	OwnerID   string            `json:"ownerID"`
	FieldKey  string            `json:"fieldKey"`
	FieldName string            `json:"fieldName"`
	FieldType CustomFieldType   `json:"fieldType"`
	Config    CustomFieldConfig `json:"config"`
	IsActive  bool              `json:"isActive"`
	SortOrder int               `json:"sortOrder"`
	AuditFields
}

// HasOption reports whether v is one of the configured options.
func (f CustomField) HasOption(v string) bool {
	for _, o := range f.Config.Options {
		if o == v {
			return true
		}
	}
	return false
}
