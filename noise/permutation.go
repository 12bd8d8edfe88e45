package noise

import "math/rand/v2"

// TableSize is the number of distinct hash values
const TableSize = 256

// PermutationTable is a shuffled bijection of [0,255], doubled so lattice
// lookups at x+1 and y+1 never need a bounds wrap
type PermutationTable struct {
	perm [TableSize * 2]uint8
}

// NewPermutationTable builds a table with a Fisher-Yates shuffle drawn from r
func NewPermutationTable(r *rand.Rand) *PermutationTable {
	t := &PermutationTable{}
	for i := 0; i < TableSize; i++ {
		t.perm[i] = uint8(i)
	}
	for i := TableSize - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		t.perm[i], t.perm[j] = t.perm[j], t.perm[i]
	}
	copy(t.perm[TableSize:], t.perm[:TableSize])
	return t
}

// At returns the raw table entry, i in [0, 512)
func (t *PermutationTable) At(i int) uint8 {
	return t.perm[i]
}

// hash mixes two wrapped lattice coordinates into a byte
func (t *PermutationTable) hash(x, y int) uint8 {
	return t.perm[int(t.perm[x])+y]
}
