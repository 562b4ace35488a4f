package gadget

import "sort"

// insertSorted inserts v into s, which is kept in ascending order by the
// given key, and returns the extended slice. Ties sort after existing
// entries, though callers reject duplicate keys before inserting.
func insertSorted[T any](s []T, v T, key func(T) string) []T {
	k := key(v)
	i := sort.Search(len(s), func(j int) bool { return key(s[j]) > k })

	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v

	return s
}
