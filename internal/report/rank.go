package report

import "sort"

// Sort keys accepted by Rank.
const (
	SortByAmount     = "amount"
	SortByVisits     = "visits"
	SortByConversion = "conversionRate"
)

// Rank returns rows sorted descending by the given key, ties broken by
// input order, truncated to limit when limit > 0. Unknown sort keys leave
// the order untouched. The input slice is not modified.
func Rank(rows []Row, sortKey string, limit int) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	switch sortKey {
	case SortByAmount:
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalAmount > out[j].TotalAmount })
	case SortByVisits:
		sort.SliceStable(out, func(i, j int) bool { return out[i].VisitCount > out[j].VisitCount })
	case SortByConversion:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ConversionRate > out[j].ConversionRate })
	}

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
