package concert

import "sort"

// Less orders concerts by (date, time), lexicographic on the normalized
// strings. Zero-padded ISO dates make the string compare equivalent to a
// chronological one; an empty time sorts before any concrete time.
func Less(a, b Concert) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.Time < b.Time
}

// SortByDateTime sorts concerts in place by (date, time) ascending.
// The sort is stable so records that share a date and time keep the order
// their venue parser produced them in.
func SortByDateTime(concerts []Concert) {
	sort.SliceStable(concerts, func(i, j int) bool {
		return Less(concerts[i], concerts[j])
	})
}
