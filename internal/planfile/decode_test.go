package planfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bankapi/internal/core"
)

func buildWorkbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		start, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, start, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	workbook := buildWorkbook(t,
		[]any{"period", "category_name", "sum"},
		[]any{"2022-02-01", "видача", 500000},
		[]any{"", "", ""},
		[]any{"2022-03-01", "збір", "50000,5"},
	)

	rows, err := Decode(bytes.NewReader(workbook))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2022-02-01", rows[0].Period.String())
	assert.Equal(t, "видача", rows[0].Category)
	assert.Equal(t, 500000.0, rows[0].Sum)

	assert.Equal(t, "2022-03-01", rows[1].Period.String())
	assert.Equal(t, "збір", rows[1].Category)
	assert.Equal(t, 50000.5, rows[1].Sum)
}

func TestDecode_HeaderIsCaseInsensitive(t *testing.T) {
	workbook := buildWorkbook(t,
		[]any{" Period ", "CATEGORY_NAME", "Sum"},
		[]any{"2022-02-01", "видача", 100000},
	)

	rows, err := Decode(bytes.NewReader(workbook))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 100000.0, rows[0].Sum)
}

func TestDecode_EmptySumCellDecodesToZero(t *testing.T) {
	workbook := buildWorkbook(t,
		[]any{"period", "category_name", "sum"},
		[]any{"2022-02-01", "видача", ""},
	)

	rows, err := Decode(bytes.NewReader(workbook))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Sum)
}

func TestDecode_NotAWorkbook(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an xlsx file")))
	assert.ErrorIs(t, err, core.ErrMalformedInput)
}

func TestDecode_MissingHeaderColumns(t *testing.T) {
	workbook := buildWorkbook(t,
		[]any{"period", "total"},
		[]any{"2022-02-01", 100000},
	)

	_, err := Decode(bytes.NewReader(workbook))
	require.ErrorIs(t, err, core.ErrMalformedInput)
	assert.Contains(t, err.Error(), "category_name")
	assert.Contains(t, err.Error(), "sum")
	assert.NotContains(t, err.Error(), "period,")
}

func TestDecode_UnparseablePeriod(t *testing.T) {
	workbook := buildWorkbook(t,
		[]any{"period", "category_name", "sum"},
		[]any{"2022-02-01", "видача", 100000},
		[]any{"next month", "збір", 50000},
	)

	_, err := Decode(bytes.NewReader(workbook))
	require.ErrorIs(t, err, core.ErrMalformedInput)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "next month")
}

func TestDecode_UnparseableSum(t *testing.T) {
	workbook := buildWorkbook(t,
		[]any{"period", "category_name", "sum"},
		[]any{"2022-02-01", "видача", "many"},
	)

	_, err := Decode(bytes.NewReader(workbook))
	require.ErrorIs(t, err, core.ErrMalformedInput)
	assert.Contains(t, err.Error(), "row 2")
}
