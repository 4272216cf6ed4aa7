package reports_test

import (
	"bytes"
	"testing"

	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/models/reports"
	"github.com/benela/benela_backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	return rows
}

func TestExportRevenueSeries(t *testing.T) {
	testutil.NewTestDB(t)

	data, err := reports.ExportRevenueSeries(fixedCtx(), 4)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Month", "Revenue"}, rows[0])
	assert.Equal(t, "Dec 2025", rows[1][0])
	assert.Equal(t, "Mar 2026", rows[4][0])
}

func TestExportTransactions(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := fixedCtx()
	testutil.CreateTransaction(t, ctx, models.TransactionTypeIncome, "120.5")
	testutil.CreateTransaction(t, ctx, models.TransactionTypeExpense, "30")

	data, err := reports.ExportTransactions(ctx)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Amount", rows[0][5])
	assert.ElementsMatch(t, []string{"income", "expense"}, []string{rows[1][3], rows[2][3]})
}
