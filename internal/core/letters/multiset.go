// Package letters builds letter multisets from normalized words and measures
// the distance between them.
package letters

// Multiset maps a letter to its number of occurrences.
type Multiset map[rune]int

// Count builds the multiset of a normalized word.
// The sum of the counts equals the rune count of normalized.
func Count(normalized string) Multiset {
	m := make(Multiset, len(normalized))
	for _, r := range normalized {
		m[r]++
	}
	return m
}

// Distinct returns the number of distinct letters.
func (m Multiset) Distinct() int {
	return len(m)
}

// Len returns the total number of letters.
func (m Multiset) Len() int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}

// Distance compares candidate against query letter by letter.
// total is the sum of |candidate[l] - query[l]| over every letter present in
// either multiset, and distinct is the size of that union.
func Distance(query, candidate Multiset) (total int, distinct int) {
	for r, c := range candidate {
		total += abs(c - query[r])
		distinct++
	}
	for r, q := range query {
		if _, ok := candidate[r]; ok {
			continue
		}
		total += q
		distinct++
	}
	return total, distinct
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
