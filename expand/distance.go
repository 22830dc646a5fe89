package expand

// Distance computes the optimal string alignment distance between two
// strings: insertions, deletions, substitutions, and adjacent
// transpositions, over runes.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < curr[j] {
					curr[j] = t // transposition
				}
			}
		}
		prev2, prev, curr = prev, curr, prev2
	}

	return prev[len(rb)]
}

// WithinDistance reports whether a and b are within max edits of each other.
// The length difference is a lower bound on the distance, checked first.
func WithinDistance(a, b string, max int) bool {
	diff := len([]rune(a)) - len([]rune(b))
	if diff < 0 {
		diff = -diff
	}
	if diff > max {
		return false
	}
	return Distance(a, b) <= max
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
