package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	var records []quality.Record
	require.NoError(t, json.Unmarshal([]byte(`[
		{"code_station": "01", "date_prelevement": "2021-03-15T09:30:00Z", "resultat": 7.5, "tags": ["a", "b"]},
		{"code_station": "02", "date_prelevement": "2021-03-16", "resultat": null, "site": {"name": "Seine"}}
	]`), &records))
	table, err := quality.Normalize(records)
	require.NoError(t, err)

	data, err := WriteXLSX(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, table.ColumnNames(), rows[0])
	assert.Equal(t, []string{"01", "2021-03-15T09:30:00Z", "7.5", `["a","b"]`}, rows[1])
	assert.Equal(t, []string{"02", "2021-03-16T00:00:00Z", "", "", "Seine"}, rows[2])

	styleID, err := f.GetCellStyle(SheetName, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}
