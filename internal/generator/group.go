package generator

// Run is a maximal stretch of consecutive items sharing the same key.
type Run[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupRuns partitions items into maximal runs of equal keys. Run order
// follows first appearance and item order inside a run is preserved. A key
// that reappears after a different key starts a new run.
func GroupRuns[K comparable, T any](items []T, key func(T) K) []Run[K, T] {
	var runs []Run[K, T]
	for _, item := range items {
		k := key(item)
		if n := len(runs); n > 0 && runs[n-1].Key == k {
			runs[n-1].Items = append(runs[n-1].Items, item)
			continue
		}
		runs = append(runs, Run[K, T]{Key: k, Items: []T{item}})
	}
	return runs
}
