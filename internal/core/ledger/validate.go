package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

var (
	ErrUnknownWallet        = errors.New("wallet does not exist")
	ErrInactiveWallet       = errors.New("wallet is inactive")
	ErrUnknownCategory      = errors.New("category does not exist")
	ErrInactiveCategory     = errors.New("category is inactive")
	ErrCategoryFlowMismatch = errors.New("category flow does not match transaction flow")
	ErrUnknownCustomField   = errors.New("custom field is not defined")
	ErrInvalidCustomValue   = errors.New("invalid custom field value")
)

// Refs is the owner's reference data a transaction is checked against.
type Refs struct {
	Wallets      []domain.Wallet
	Categories   []domain.Category
	CustomFields []domain.CustomField
}

// Normalize shapes a candidate for its flow: a transfer carries neither a
// category nor custom field values, and empty custom values are dropped.
func Normalize(txn domain.Transaction) domain.Transaction {
	if txn.IsTransfer() {
		txn.CategoryID = nil
		txn.CustomFields = map[string]any{}
		return txn
	}
	txn.ToWalletID = nil
	cleaned := make(map[string]any, len(txn.CustomFields))
	for k, v := range txn.CustomFields {
		if isEmptyValue(v) {
			continue
		}
		cleaned[k] = v
	}
	txn.CustomFields = cleaned
	return txn
}

// CheckTransaction validates a candidate's shape and its references. prev is
// the stored version when updating; references it already held may have
// been deactivated since and are still accepted.
func CheckTransaction(txn domain.Transaction, prev *domain.Transaction, refs Refs) error {
	if err := txn.Validate(); err != nil {
		return err
	}

	wallets := make(map[string]domain.Wallet, len(refs.Wallets))
	for _, w := range refs.Wallets {
		wallets[w.WalletID] = w
	}
	check := func(id string, held bool) error {
		w, ok := wallets[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownWallet, id)
		}
		if !w.IsActive && !held {
			return fmt.Errorf("%w: %s", ErrInactiveWallet, w.Name)
		}
		return nil
	}

	if err := check(txn.WalletID, prev != nil && prev.Touches(txn.WalletID)); err != nil {
		return err
	}
	if txn.IsTransfer() {
		return check(*txn.ToWalletID, prev != nil && prev.Touches(*txn.ToWalletID))
	}

	if err := checkCategory(txn, prev, refs.Categories); err != nil {
		return err
	}
	return CheckCustomValues(txn.CustomFields, refs.CustomFields)
}

func checkCategory(txn domain.Transaction, prev *domain.Transaction, categories []domain.Category) error {
	id := *txn.CategoryID
	for _, c := range categories {
		if c.CategoryID != id {
			continue
		}
		if c.Flow != txn.Flow {
			return fmt.Errorf("%w: %s is %s", ErrCategoryFlowMismatch, c.Name, c.Flow)
		}
		held := prev != nil && prev.CategoryID != nil && *prev.CategoryID == id
		if !c.IsActive && !held {
			return fmt.Errorf("%w: %s", ErrInactiveCategory, c.Name)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCategory, id)
}

// CheckCustomValues verifies every value against its active definition.
func CheckCustomValues(values map[string]any, fields []domain.CustomField) error {
	defs := make(map[string]domain.CustomField, len(fields))
	for _, f := range fields {
		if f.IsActive {
			defs[f.FieldKey] = f
		}
	}

	for key, v := range values {
		def, ok := defs[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCustomField, key)
		}
		if err := checkValue(def, v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidCustomValue, def.FieldName, err)
		}
	}
	return nil
}

func checkValue(def domain.CustomField, v any) error {
	switch def.FieldType {
	case domain.FieldText:
		if _, ok := v.(string); !ok {
			return errors.New("expected text")
		}
	case domain.FieldNumber:
		switch n := v.(type) {
		case float64, int, int64, json.Number:
		case string:
			if _, err := strconv.ParseFloat(n, 64); err != nil {
				return fmt.Errorf("%q is not a number", n)
			}
		default:
			return errors.New("expected a number")
		}
	case domain.FieldDate:
		s, ok := v.(string)
		if !ok || !domain.IsValidDate(s) {
			return errors.New("expected a YYYY-MM-DD date")
		}
	case domain.FieldSingleSelect:
		s, ok := v.(string)
		if !ok || !def.HasOption(s) {
			return fmt.Errorf("%v is not one of the options", v)
		}
	case domain.FieldMultiSelect:
		items, ok := toStrings(v)
		if !ok {
			return errors.New("expected a list of options")
		}
		for _, s := range items {
			if !def.HasOption(s) {
				return fmt.Errorf("%q is not one of the options", s)
			}
		}
	default:
		return fmt.Errorf("unsupported field type %q", def.FieldType)
	}
	return nil
}

func toStrings(v any) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		return items, true
	case []any:
		out := make([]string, 0, len(items))
		for _, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func isEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	}
	return false
}

// CheckCustomFieldDefinition validates a field definition before it is
// stored.
func CheckCustomFieldDefinition(f domain.CustomField) error {
	if f.FieldKey == "" || f.FieldName == "" {
		return errors.New("field key and name are required")
	}
	if !f.FieldType.IsValid() {
		return fmt.Errorf("unknown field type %q", f.FieldType)
	}
	if f.FieldType.IsSelect() && len(f.Config.Options) == 0 {
		return errors.New("select fields need at least one option")
	}
	return nil
}
