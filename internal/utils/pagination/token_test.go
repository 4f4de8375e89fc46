package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Transaction cursor
	cursor := Cursor{
		Date:      "2024-03-15",
		CreatedAt: time.Date(2024, 3, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "6f1c2b0e-1f5e-4a53-9d8e-3b0c1b3e9a10",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, cursor, decoded, "Cursor should match after decode")

	// Test case 2: Audit cursor without a date
	auditCursor := Cursor{CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ID: "a-1"}
	decoded, err = DecodeToken(EncodeToken(auditCursor))
	assert.NoError(t, err)
	assert.Equal(t, auditCursor, decoded)

	// Test case 3: Current time values
	now := time.Now().UTC()
	decoded, err = DecodeToken(EncodeToken(Cursor{Date: "2024-03-15", CreatedAt: now, ID: "x"}))
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decoded.CreatedAt), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	_, err = DecodeToken(EncodeMultiFieldToken("2024-03-15"))
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid time format
	_, err = DecodeToken(EncodeMultiFieldToken("2024-03-15", "notatime", "id"))
	assert.Error(t, err, "Should return an error for invalid time format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention time parsing issue")
}

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	fields := []string{"2024-03-15", "journal-1"}
	decoded, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)

	_, err = DecodeMultiFieldToken("%%%")
	assert.Error(t, err)
}
