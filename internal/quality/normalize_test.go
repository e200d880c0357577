package quality

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecords(t *testing.T, raw string) []Record {
	t.Helper()
	var records []Record
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	return records
}

func TestRecordKeepsKeyOrder(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"z": 1, "a": "x", "m": {"k": true}, "l": [1, 2]}`), &rec))

	keys := make([]string, 0, len(rec))
	for _, f := range rec {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"z", "a", "m", "l"}, keys)

	v, ok := rec.Get("z")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	nested, ok := rec.Get("m")
	require.True(t, ok)
	assert.Equal(t, Record{{Key: "k", Value: true}}, nested)

	list, _ := rec.Get("l")
	assert.Equal(t, []any{1.0, 2.0}, list)
}

func TestRecordRejectsNonObject(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`[1, 2]`), &rec)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	records := decodeRecords(t, `[
		{"code_station": "A", "date_prelevement": "2021-03-15T10:00:00Z", "resultat": 7.5, "site": {"name": "Seine", "depth": 2}},
		{"code_station": "B", "date_prelevement": "2021-03-16", "resultat": null, "extra": "late"}
	]`)

	table, err := Normalize(records)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t,
		[]string{"code_station", "date_prelevement", "resultat", "site.name", "site.depth", "extra"},
		table.ColumnNames())

	date, ok := table.Column(ColumnDate)
	require.True(t, ok)
	assert.Equal(t, KindTime, date.Kind)
	first, ok := date.Time(0)
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, 3, 15, 10, 0, 0, 0, time.UTC), first)
	second, _ := date.Time(1)
	assert.Equal(t, time.Date(2021, 3, 16, 0, 0, 0, 0, time.UTC), second)

	resultat, _ := table.Column("resultat")
	assert.Equal(t, KindNumber, resultat.Kind)
	assert.Equal(t, []any{7.5, nil}, resultat.Values)

	depth, _ := table.Column("site.depth")
	assert.Equal(t, []any{2.0, nil}, depth.Values)

	extra, _ := table.Column("extra")
	assert.Equal(t, KindString, extra.Kind)
	assert.Equal(t, []any{nil, "late"}, extra.Values)
}

func TestNormalizeDateFailures(t *testing.T) {
	t.Run("record missing the date field", func(t *testing.T) {
		records := decodeRecords(t, `[
			{"code_station": "A", "date_prelevement": "2021-03-15", "resultat": 1},
			{"code_station": "B", "resultat": 2}
		]`)
		_, err := Normalize(records)
		assert.ErrorIs(t, err, ErrMissingDate)
	})

	t.Run("no record has the date field", func(t *testing.T) {
		records := decodeRecords(t, `[{"code_station": "A"}]`)
		_, err := Normalize(records)
		assert.ErrorIs(t, err, ErrMissingDate)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := Normalize(nil)
		assert.ErrorIs(t, err, ErrMissingDate)
	})

	t.Run("unparseable date", func(t *testing.T) {
		records := decodeRecords(t, `[{"date_prelevement": "yesterday"}]`)
		_, err := Normalize(records)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("numeric date", func(t *testing.T) {
		records := decodeRecords(t, `[{"date_prelevement": 20210315}]`)
		_, err := Normalize(records)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestColumnKinds(t *testing.T) {
	records := decodeRecords(t, `[
		{"date_prelevement": "2021-03-15", "mixed": 1, "flag": true, "empty": null, "list": [1]},
		{"date_prelevement": "2021-03-16", "mixed": "one", "flag": false, "empty": null, "list": [2]}
	]`)
	table, err := Normalize(records)
	require.NoError(t, err)

	kinds := map[string]ColumnKind{}
	for _, c := range table.Columns() {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, KindMixed, kinds["mixed"])
	assert.Equal(t, KindBool, kinds["flag"])
	assert.Equal(t, KindEmpty, kinds["empty"])
	assert.Equal(t, KindMixed, kinds["list"])
	assert.Equal(t, "time", kinds[ColumnDate].String())
}

func TestRecordMarshalKeepsOrder(t *testing.T) {
	raw := `{"z":1,"a":{"k":[true,null]},"m":"x"}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}
