package freq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndCount(t *testing.T) {
	table := NewTable()
	table.Record("hello")
	table.Record("world")
	table.Record("hello")

	assert.Equal(t, uint64(2), table.Count("hello"))
	assert.Equal(t, uint64(1), table.Count("world"))
	assert.Equal(t, uint64(0), table.Count("absent"))
	assert.Equal(t, uint64(3), table.Total())
	assert.Equal(t, 2, table.Distinct())
}

func TestTotalEqualsSumOfCounts(t *testing.T) {
	table := NewTable()
	tokens := []string{"a", "b", "a", "c", "a", "b"}
	for _, tok := range tokens {
		table.Record(tok)
	}
	var sum uint64
	for _, entry := range table.Emit() {
		sum += entry.Count
	}
	assert.Equal(t, uint64(len(tokens)), sum)
	assert.Equal(t, table.Total(), sum)
}

func TestEmitOrdering(t *testing.T) {
	table := NewTable()
	table.Add("rare", 1)
	table.Add("common", 10)
	table.Add("mid", 5)

	entries := table.Emit()
	require.Len(t, entries, 3)
	assert.Equal(t, "common", entries[0].Token)
	assert.Equal(t, "mid", entries[1].Token)
	assert.Equal(t, "rare", entries[2].Token)
}

func TestEmitTieBreakLexicographic(t *testing.T) {
	table := NewTable()
	table.Add("world", 3)
	table.Add("hello", 3)
	table.Add("apple", 3)

	entries := table.Emit()
	require.Len(t, entries, 3)
	assert.Equal(t, "apple", entries[0].Token)
	assert.Equal(t, "hello", entries[1].Token)
	assert.Equal(t, "world", entries[2].Token)
}

func TestMergeEquivalence(t *testing.T) {
	tokens := []string{"x", "y", "x", "z", "y", "x", "w"}

	sequential := NewTable()
	for _, tok := range tokens {
		sequential.Record(tok)
	}

	// Any partition of the token stream must merge to identical counts.
	left, right := NewTable(), NewTable()
	for i, tok := range tokens {
		if i%2 == 0 {
			left.Record(tok)
		} else {
			right.Record(tok)
		}
	}
	merged := NewTable()
	merged.Merge(left)
	merged.Merge(right)

	assert.Equal(t, sequential.Total(), merged.Total())
	assert.Equal(t, sequential.Emit(), merged.Emit())
}

func TestMergeNil(t *testing.T) {
	table := NewTable()
	table.Record("x")
	table.Merge(nil)
	assert.Equal(t, uint64(1), table.Total())
}

func TestPrune(t *testing.T) {
	table := NewTable()
	table.Add("keep", 100)
	table.Add("borderline", 5)
	table.Add("drop", 4)

	table.Prune(5)
	assert.Equal(t, 2, table.Distinct())
	assert.Equal(t, uint64(105), table.Total())
	assert.Equal(t, uint64(0), table.Count("drop"))
}

func TestEmitEmptyTable(t *testing.T) {
	table := NewTable()
	assert.Empty(t, table.Emit())
	assert.Equal(t, uint64(0), table.Total())
}

func TestLanguageMap(t *testing.T) {
	m := NewLanguageMap()
	m.Table("en").Record("hello")
	m.Table("en").Record("hello")
	m.Table("de").Record("hallo")
	m.Table("").Record("hi")

	assert.Equal(t, []string{"de", "en", "und"}, m.Languages())
	assert.Equal(t, uint64(4), m.Total())

	combined := m.Combined()
	assert.Equal(t, uint64(2), combined.Count("hello"))
	assert.Equal(t, uint64(1), combined.Count("hallo"))
	assert.Equal(t, uint64(1), combined.Count("hi"))
	assert.Equal(t, combined.Total(), m.Total())
}

func TestLanguageMapMerge(t *testing.T) {
	a := NewLanguageMap()
	a.Table("en").Record("hello")
	b := NewLanguageMap()
	b.Table("en").Record("hello")
	b.Table("fr").Record("bonjour")

	a.Merge(b)
	assert.Equal(t, uint64(2), a.Table("en").Count("hello"))
	assert.Equal(t, uint64(1), a.Table("fr").Count("bonjour"))
	assert.Equal(t, uint64(3), a.Total())
}
