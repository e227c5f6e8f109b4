package challengeutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	require.Equal(t, []int{1, 2}, Paginate(items, 1, 2))
	require.Equal(t, []int{3, 4}, Paginate(items, 2, 2))
	require.Equal(t, []int{5}, Paginate(items, 3, 2))
	require.Equal(t, []int{}, Paginate(items, 4, 2))
	require.Equal(t, []int{}, Paginate(items, 1<<62, 1<<3))
	require.Equal(t, []int{}, Paginate(items, 0, 2))
	require.Equal(t, []int{}, Paginate([]int{}, 1, 10))
}

func TestPaginate_Partition(t *testing.T) {
	for n := 0; n <= 12; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		for size := 1; size <= 5; size++ {
			var all []int
			for page := 1; page <= n/size+2; page++ {
				all = append(all, Paginate(items, page, size)...)
			}

			if n == 0 {
				require.Empty(t, all)
				continue
			}
			require.Equal(t, items, all, "n=%d size=%d", n, size)
		}
	}
}
