package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"A": "1", "B": "2"}
	b := map[string]string{"B": "3"}

	merged := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{"A": "1", "B": "3"}, merged)
}

func TestIterSeqDistinct(t *testing.T) {
	assert := assert.New(t)

	seq := slices.Values([]int{3, 6, 1, 4, 6, 2})
	assert.Equal([]int{3, 6, 1, 4}, slices.Collect(IterSeqDistinct(seq)))

	assert.Empty(slices.Collect(IterSeqDistinct(slices.Values([]int{}))))

	var first []int
	for val := range IterSeqDistinct(seq) {
		first = append(first, val)
		break
	}
	assert.Equal([]int{3}, first)
}
