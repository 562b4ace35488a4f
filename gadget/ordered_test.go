package gadget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertSorted(t *testing.T) {
	ident := func(s string) string { return s }

	var seq []string
	for _, v := range []string{"c", "a", "b"} {
		seq = insertSorted(seq, v, ident)
	}

	assert.Equal(t, []string{"a", "b", "c"}, seq)
}

func TestInsertSortedEnds(t *testing.T) {
	ident := func(s string) string { return s }

	seq := []string{"b", "c"}
	seq = insertSorted(seq, "a", ident)
	seq = insertSorted(seq, "d", ident)

	assert.Equal(t, []string{"a", "b", "c", "d"}, seq)
}
