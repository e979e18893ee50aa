// Package freq implements the exact word-frequency table at the heart of
// the pipeline.
package freq

import "sort"

// Entry is one (token, count) pair in an emitted frequency list.
type Entry struct {
	Token string
	Count uint64
}

// Table maps tokens to exact occurrence counts. A Table is not safe for
// concurrent use; the pipeline gives each worker its own Table and merges
// them after all workers finish.
type Table struct {
	counts map[string]uint64
	total  uint64
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		counts: make(map[string]uint64),
	}
}

// Record increments the count for token by one, creating the entry with
// count 1 if absent.
func (t *Table) Record(token string) {
	t.counts[token]++
	t.total++
}

// Add increments the count for token by n.
func (t *Table) Add(token string, n uint64) {
	if n == 0 {
		return
	}
	t.counts[token] += n
	t.total += n
}

// Count returns the current count for token, zero if absent.
func (t *Table) Count(token string) uint64 {
	return t.counts[token]
}

// Merge folds every count from other into t. Merging per-worker tables in
// any order yields the same sums as fully sequential counting.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for token, count := range other.counts {
		t.counts[token] += count
	}
	t.total += other.total
}

// Total returns the sum of all counts, which equals the number of Record
// calls (plus Add increments) applied to the table and its merged sources.
func (t *Table) Total() uint64 {
	return t.total
}

// Distinct returns the number of distinct tokens.
func (t *Table) Distinct() int {
	return len(t.counts)
}

// Prune removes every entry whose count is below min. Pruned occurrences
// are subtracted from the total.
func (t *Table) Prune(min uint64) {
	for token, count := range t.counts {
		if count < min {
			delete(t.counts, token)
			t.total -= count
		}
	}
}

// Emit returns all entries ordered by descending count, ties broken by
// ascending lexicographic token order. The ordering is deterministic so
// re-running on an unchanged corpus produces byte-identical output.
func (t *Table) Emit() []Entry {
	entries := make([]Entry, 0, len(t.counts))
	for token, count := range t.counts {
		entries = append(entries, Entry{Token: token, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Token < entries[j].Token
	})
	return entries
}
