package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{30, 1},
		{31, 2},
		{60, 2},
		{61, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Paginate(1, tc.total).TotalPages, "total %d", tc.total)
	}
}

func TestPaginateNeighbors(t *testing.T) {
	d := Paginate(2, 100) // 4 pages
	require.True(t, d.HasPrev)
	require.True(t, d.HasNext)
	assert.Equal(t, 1, *d.PrevPage)
	assert.Equal(t, 3, *d.NextPage)

	first := Paginate(1, 100)
	assert.False(t, first.HasPrev)
	assert.Nil(t, first.PrevPage)

	last := Paginate(4, 100)
	assert.False(t, last.HasNext)
	assert.Nil(t, last.NextPage)
}

func TestSkip(t *testing.T) {
	assert.Equal(t, int64(0), Skip(1))
	assert.Equal(t, int64(30), Skip(2))
	assert.Equal(t, int64(270), Skip(10))
}
