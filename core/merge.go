package core

import (
	"sort"
	"strconv"
	"strings"
)

// Merge concatenates per-document extraction results in input order and
// applies a total order: descending by the integer formed from the digits of
// each message's ID. IDs with no digits (or digits that overflow) sort as 0.
//
// This is a heuristic proxy for recency inherited from the export format,
// where IDs are "message<N>" with N increasing over time. It is deliberately
// not timestamp-based; IDs that are non-numeric or non-monotonic will order
// approximately. The sort is stable, so ties keep concatenation order —
// callers should pass documents pre-sorted by file name.
func Merge(docs [][]Message) []Message {
	var all []Message
	for _, msgs := range docs {
		all = append(all, msgs...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return numericID(all[i].ID) > numericID(all[j].ID)
	})
	return all
}

// numericID strips every non-digit rune from id and parses the rest as an
// integer. Empty or unparsable results are 0.
func numericID(id string) int64 {
	var b strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
