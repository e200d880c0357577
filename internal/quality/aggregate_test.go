package quality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectParameter(t *testing.T) {
	t.Run("prefers temperature over earlier numeric columns", func(t *testing.T) {
		table, err := Normalize(decodeRecords(t, `[
			{"date_prelevement": "2021-03-15", "ph": 7.1, "temperature": 12.5}
		]`))
		require.NoError(t, err)

		p, err := SelectParameter(table)
		require.NoError(t, err)
		assert.Equal(t, "temperature", p)
	})

	t.Run("falls back to the first numeric column", func(t *testing.T) {
		table, err := Normalize(decodeRecords(t, `[
			{"code_station": "A", "date_prelevement": "2021-03-15", "label": "x", "resultat": 3, "ph": 7.1}
		]`))
		require.NoError(t, err)

		p, err := SelectParameter(table)
		require.NoError(t, err)
		assert.Equal(t, "resultat", p)
	})

	t.Run("no numeric column", func(t *testing.T) {
		table, err := Normalize(decodeRecords(t, `[
			{"code_station": "A", "date_prelevement": "2021-03-15"}
		]`))
		require.NoError(t, err)

		_, err = SelectParameter(table)
		assert.ErrorIs(t, err, ErrNoNumericColumn)
	})
}

func TestMeanByStation(t *testing.T) {
	table, err := Normalize(decodeRecords(t, `[
		{"code_station": "B", "date_prelevement": "2021-03-15", "temperature": 30},
		{"code_station": "A", "date_prelevement": "2021-03-15", "temperature": 10},
		{"code_station": "A", "date_prelevement": "2021-03-16", "temperature": 20}
	]`))
	require.NoError(t, err)

	means, err := MeanByStation(table, "temperature")
	require.NoError(t, err)

	assert.Equal(t, []StationMean{
		{Station: "A", Mean: 15, Count: 2},
		{Station: "B", Mean: 30, Count: 1},
	}, means)
}

func TestMeanByStationEdgeCases(t *testing.T) {
	t.Run("null values and stations are skipped", func(t *testing.T) {
		table, err := Normalize(decodeRecords(t, `[
			{"code_station": "A", "date_prelevement": "2021-03-15", "temperature": null},
			{"code_station": null, "date_prelevement": "2021-03-15", "temperature": 99},
			{"code_station": "C", "date_prelevement": "2021-03-15", "temperature": 4}
		]`))
		require.NoError(t, err)

		means, err := MeanByStation(table, "temperature")
		require.NoError(t, err)
		require.Len(t, means, 2)
		assert.Equal(t, "A", means[0].Station)
		assert.True(t, math.IsNaN(means[0].Mean))
		assert.Equal(t, 0, means[0].Count)
		assert.Equal(t, StationMean{Station: "C", Mean: 4, Count: 1}, means[1])
	})

	t.Run("numeric station codes sort numerically", func(t *testing.T) {
		table, err := Normalize(decodeRecords(t, `[
			{"code_station": 100, "date_prelevement": "2021-03-15", "temperature": 1},
			{"code_station": 9, "date_prelevement": "2021-03-15", "temperature": 2}
		]`))
		require.NoError(t, err)

		means, err := MeanByStation(table, "temperature")
		require.NoError(t, err)
		assert.Equal(t, "9", means[0].Station)
		assert.Equal(t, "100", means[1].Station)
	})

	t.Run("missing station column", func(t *testing.T) {
		table, err := Normalize(decodeRecords(t, `[{"date_prelevement": "2021-03-15", "temperature": 1}]`))
		require.NoError(t, err)

		_, err = MeanByStation(table, "temperature")
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("non-numeric parameter", func(t *testing.T) {
		table, err := Normalize(decodeRecords(t, `[{"code_station": "A", "date_prelevement": "2021-03-15", "temperature": "warm"}]`))
		require.NoError(t, err)

		_, err = MeanByStation(table, "temperature")
		assert.ErrorIs(t, err, ErrNotNumeric)
	})
}
