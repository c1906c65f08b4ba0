package tract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	access := func(half, ten float64) *FoodAccess {
		return &FoodAccess{LAPopHalf: Some(half), LAPop10: Some(ten)}
	}

	tests := []struct {
		name string
		rec  Record
		want Classification
	}{
		{
			name: "urban share over threshold",
			rec:  Record{Urban: Some(1), Population: Some(1000), Access: access(400, 0)},
			want: Classification{HalfMile: 1},
		},
		{
			name: "urban share under threshold",
			rec:  Record{Urban: Some(1), Population: Some(1000), Access: access(300, 0)},
			want: Classification{},
		},
		{
			name: "urban count threshold",
			rec:  Record{Urban: Some(1), Population: Some(10000), Access: access(500, 0)},
			want: Classification{HalfMile: 1},
		},
		{
			name: "urban ignores ten mile",
			rec:  Record{Urban: Some(1), Population: Some(1000), Access: access(0, 900)},
			want: Classification{},
		},
		{
			name: "rural share",
			rec:  Record{Rural: Some(1), Population: Some(300), Access: access(0, 100)},
			want: Classification{TenMile: 1},
		},
		{
			name: "rural ignores half mile",
			rec:  Record{Rural: Some(1), Population: Some(1000), Access: access(900, 0)},
			want: Classification{},
		},
		{
			name: "both flags",
			rec:  Record{Urban: Some(1), Rural: Some(1), Population: Some(1000), Access: access(600, 600)},
			want: Classification{HalfMile: 1, TenMile: 1},
		},
		{
			name: "neither flag",
			rec:  Record{Urban: Some(0), Rural: Some(0), Population: Some(1000), Access: access(900, 900)},
			want: Classification{},
		},
		{
			name: "no survey data",
			rec:  Record{Urban: Some(1), Population: Some(1000)},
			want: Classification{},
		},
		{
			name: "zero population",
			rec:  Record{Urban: Some(1), Population: Some(0), Access: access(0, 0)},
			want: Classification{},
		},
		{
			name: "zero population with low access",
			rec:  Record{Urban: Some(1), Population: Some(0), Access: access(10, 0)},
			want: Classification{HalfMile: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.rec)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.HalfMile+tt.want.TenMile, got.Score())
			assert.Equal(t, got.Score() != 0, got.LowAccess())
		})
	}
}

func TestClassifyAll(t *testing.T) {
	rows := ClassifyAll(loadFixture(t))
	require.Len(t, rows, len(fixtureTracts))

	scores := make(map[string]int, len(rows))
	for _, r := range rows {
		v, err := r.Value(ColLowAccess)
		require.NoError(t, err)
		scores[r.ID] = int(v.Value)
	}
	assert.Equal(t, map[string]int{
		"53001000100": 1, // urban, 40 of 100
		"53001000200": 0, // no survey row
		"53003000100": 1, // rural, 120 of 300
		"41001000100": 1, // urban, 600 people; classification is not state-filtered
	}, scores)

	half, err := rows[0].Value(ColNewTractsHalf)
	require.NoError(t, err)
	assert.True(t, half.Is(1))
	ten, err := rows[2].Value(ColNewTracts10)
	require.NoError(t, err)
	assert.True(t, ten.Is(1))

	pop, err := rows[0].Value(ColPopulation)
	require.NoError(t, err)
	assert.True(t, pop.Is(100))
}
