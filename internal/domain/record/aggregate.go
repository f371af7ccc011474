package record

import (
	"sort"
)

// CountTags folds every tag occurrence across records. The result is ordered
// by count descending; equal counts keep first-seen order.
func CountTags(records []Record) []TagCount {
	index := make(map[string]int)
	counts := make([]TagCount, 0)
	for _, r := range records {
		for _, t := range r.Tags {
			i, ok := index[t]
			if !ok {
				i = len(counts)
				index[t] = i
				counts = append(counts, TagCount{Tag: t})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// TopTags returns at most n entries of CountTags.
func TopTags(records []Record, n int) []TagCount {
	counts := CountTags(records)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// CountDates counts records per calendar day, newest day first.
func CountDates(records []Record) []DateCount {
	byDate := make(map[string]int)
	for _, r := range records {
		byDate[FormatDate(r.OccurredOn)]++
	}
	out := make([]DateCount, 0, len(byDate))
	for d, c := range byDate {
		out = append(out, DateCount{Date: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
