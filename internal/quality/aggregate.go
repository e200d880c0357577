package quality

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// SelectParameter picks the column to plot: PreferredParameter when the
// table has it, otherwise the first numeric column in table order.
//
// The fallback stands in for a schema guarantee the upstream does not give.
func SelectParameter(t *Table) (string, error) {
	if t.Has(PreferredParameter) {
		return PreferredParameter, nil
	}
	for _, c := range t.Columns() {
		if c.Kind == KindNumber {
			return c.Name, nil
		}
	}
	return "", ErrNoNumericColumn
}

// MeanByStation groups rows by station code and averages parameter per
// station. Rows without a station are skipped, null values are ignored, and
// stations come back in ascending code order.
func MeanByStation(t *Table, parameter string) ([]StationMean, error) {
	stations, err := t.MustColumn(ColumnStation)
	if err != nil {
		return nil, err
	}
	values, err := t.MustColumn(parameter)
	if err != nil {
		return nil, err
	}

	type group struct {
		key   string
		num   float64
		isNum bool
		sum   float64
		count int
	}
	groups := make(map[string]*group)

	for i := 0; i < t.Len(); i++ {
		key, num, isNum, ok := stationKey(stations.Values[i])
		if !ok {
			continue
		}

		g, exists := groups[key]
		if !exists {
			g = &group{key: key, num: num, isNum: isNum}
			groups[key] = g
		}

		v, ok, err := values.Float(i)
		if err != nil {
			return nil, err
		}
		if !ok || math.IsNaN(v) {
			continue
		}
		g.sum += v
		g.count++
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.isNum && b.isNum {
			return a.num < b.num
		}
		return a.key < b.key
	})

	result := make([]StationMean, 0, len(ordered))
	for _, g := range ordered {
		mean := math.NaN()
		if g.count > 0 {
			mean = g.sum / float64(g.count)
		}
		result = append(result, StationMean{
			Station: g.key,
			Mean:    mean,
			Count:   g.count,
		})
	}
	return result, nil
}

func stationKey(v any) (key string, num float64, isNum bool, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", 0, false, false
	case string:
		return x, 0, false, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), x, true, true
	default:
		return fmt.Sprint(x), 0, false, true
	}
}
