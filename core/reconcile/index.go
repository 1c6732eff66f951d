package reconcile

// Index maps normalized names to records. It is built once per run and only read
// afterwards, so concurrent Resolve calls are safe.
type Index[T any] struct {
	entries map[string]T
}

// BuildIndex indexes items by the normalized value of name(item), in input order.
// Items with an unkeyable name are skipped. When two items share a key the later one
// replaces the earlier one (last write wins).
func BuildIndex[T any](items []T, name func(T) string) *Index[T] {
	ix := &Index[T]{entries: make(map[string]T, len(items))}
	for _, item := range items {
		key, ok := Normalize(name(item))
		if !ok {
			continue
		}
		ix.entries[key] = item
	}
	return ix
}

// Resolve looks name up by its normalized key. There is no fallback and no partial
// matching: either the keys are equal or there is no match.
func (ix *Index[T]) Resolve(name string) (T, bool) {
	var zero T
	if ix == nil {
		return zero, false
	}
	key, ok := Normalize(name)
	if !ok {
		return zero, false
	}
	item, found := ix.entries[key]
	return item, found
}

// Len returns the number of distinct keys.
func (ix *Index[T]) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}
