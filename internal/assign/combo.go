package assign

import "iter"

// Combinations yields every 4-element index subset of [0, n) in
// lexicographic order. The sequence can be ranged over more than once.
func Combinations(n int) iter.Seq[[4]int] {
	return func(yield func([4]int) bool) {
		for a := 0; a < n-3; a++ {
			for b := a + 1; b < n-2; b++ {
				for c := b + 1; c < n-1; c++ {
					for d := c + 1; d < n; d++ {
						if !yield([4]int{a, b, c, d}) {
							return
						}
					}
				}
			}
		}
	}
}
