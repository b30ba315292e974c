package validate

import "github.com/yuezato/xorslp-ec/slp"

// Rename is a single (from, to) entry of a proposed term renaming.
type Rename struct {
	From, To slp.Term
}

// IsSubvaluation reports whether every term b defines also has an
// equal-valued term in a, returning the correspondence found for each
// as Rename{From: b-term, To: a-term}. Terms in b with no matching value in a mean b is not
// a subvaluation of a, and ok is false.
func IsSubvaluation(a, b Valuation) (mapping []Rename, ok bool) {
	// Index a's terms by their sorted value for O(1) lookup.
	byValue := make(map[string][]slp.Term, len(a))
	keyOf := func(s TermSet) string {
		sorted := s.Sorted()
		key := make([]byte, 0, len(sorted)*8)
		for _, t := range sorted {
			key = append(key, byte(t.Kind))
			key = append(key, byte(t.Index), byte(t.Index>>8), byte(t.Index>>16), byte(t.Index>>24))
		}
		return string(key)
	}
	for term, val := range a {
		k := keyOf(val)
		byValue[k] = append(byValue[k], term)
	}

	for bTerm, bVal := range b {
		candidates := byValue[keyOf(bVal)]
		if len(candidates) == 0 {
			return nil, false
		}
		mapping = append(mapping, Rename{From: bTerm, To: candidates[0]})
	}
	return mapping, true
}

// IsStrictSubvaluation is IsSubvaluation plus injectivity: no two
// distinct b-terms may map to the same a-term.
func IsStrictSubvaluation(a, b Valuation) (mapping []Rename, ok bool) {
	mapping, ok = IsSubvaluation(a, b)
	if !ok {
		return nil, false
	}
	seen := make(map[slp.Term]bool, len(mapping))
	for _, r := range mapping {
		if seen[r.To] {
			return nil, false
		}
		seen[r.To] = true
	}
	return mapping, true
}
