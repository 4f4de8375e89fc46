package dto

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

// CreateCustomFieldRequest defines a new transaction attribute.
type CreateCustomFieldRequest struct {
	FieldKey  string                 `json:"fieldKey" binding:"required,max=50"`
	FieldName string                 `json:"fieldName" binding:"required,max=100"`
	FieldType domain.CustomFieldType `json:"fieldType" binding:"required,oneof=text number date single_select multi_select"`
	Options   []string               `json:"options"` // Required for select types
	SortOrder *int                   `json:"sortOrder" binding:"omitempty,min=0"`
}

// UpdateCustomFieldRequest defines the data allowed for updating a field.
type UpdateCustomFieldRequest struct {
	FieldName *string  `json:"fieldName" binding:"omitempty,max=100"`
	Options   []string `json:"options"` // Replaces the options when non-nil
	SortOrder *int     `json:"sortOrder" binding:"omitempty,min=0"`
	IsActive  *bool    `json:"isActive"`
	Version   *int64   `json:"version"`
}

type CustomFieldResponse struct {
	FieldID   string                 `json:"fieldID"`
	FieldKey  string                 `json:"fieldKey"`
	FieldName string                 `json:"fieldName"`
	FieldType domain.CustomFieldType `json:"fieldType"`
	Options   []string               `json:"options,omitempty"`
	IsActive  bool                   `json:"isActive"`
	SortOrder int                    `json:"sortOrder"`
	Version   int64                  `json:"version"`
}

func ToCustomFieldResponse(f *domain.CustomField) CustomFieldResponse {
	return CustomFieldResponse{
		FieldID:   f.FieldID,
		FieldKey:  f.FieldKey,
		FieldName: f.FieldName,
		FieldType: f.FieldType,
		Options:   f.Config.Options,
		IsActive:  f.IsActive,
		SortOrder: f.SortOrder,
		Version:   f.Version,
	}
}

func ToListCustomFieldResponse(fields []domain.CustomField) []CustomFieldResponse {
	res := make([]CustomFieldResponse, len(fields))
	for i := range fields {
		res[i] = ToCustomFieldResponse(&fields[i])
	}
	return res
}

type ListCustomFieldsResponse struct {
	CustomFields []CustomFieldResponse `json:"customFields"`
}
