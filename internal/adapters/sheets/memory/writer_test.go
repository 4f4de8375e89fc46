package memory

import (
	"context"
	"testing"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWorkbook(t *testing.T) {
	w := New()
	ctx := context.Background()

	loc, err := w.WriteWorkbook(ctx, domain.Workbook{
		FileName: "nhat-ky-cho-an_2024-03-01_2024-03-31",
		Sheets:   []domain.Sheet{{Name: "NHAT_KY_CHO_AN", Header: []string{"Ngày"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "memory://nhat-ky-cho-an_2024-03-01_2024-03-31", loc)

	_, err = w.WriteWorkbook(ctx, domain.Workbook{FileName: "a-report"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a-report", "nhat-ky-cho-an_2024-03-01_2024-03-31"}, w.Names())

	got, ok := w.Get("nhat-ky-cho-an_2024-03-01_2024-03-31")
	require.True(t, ok)
	assert.Equal(t, "NHAT_KY_CHO_AN", got.Sheets[0].Name)

	_, err = w.WriteWorkbook(ctx, domain.Workbook{})
	assert.Error(t, err)
}
