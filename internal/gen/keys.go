package gen

// Order selects how keys for a batch of operations are sequenced.
type Order int

const (
	// Sequential yields keys 0, 1, ..., count-1.
	Sequential Order = iota
	// RandomOrder yields count independent uniform draws from [0, count).
	// Duplicates are possible and intentional: they produce a realistic mix
	// of inserts and overwrites.
	RandomOrder
)

// Keys returns count integer keys in the given order. Random draws come
// from rnd, so a fixed seed reproduces the same key sequence.
func Keys(rnd *Random, count int, order Order) []int {
	keys := make([]int, count)
	if order == Sequential {
		for i := range keys {
			keys[i] = i
		}
		return keys
	}
	for i := range keys {
		keys[i] = rnd.Uniform(count)
	}
	return keys
}
