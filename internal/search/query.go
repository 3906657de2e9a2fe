package search

import (
	"slices"
	"strings"
)

// Result is one ranked query hit.
type Result struct {
	Record
	Score int `json:"score"`
}

const (
	titleWeight   = 10
	contentWeight = 1
)

// Query matches every whitespace-separated term of q case-insensitively
// against title and content. Records must contain all terms. Title hits rank
// above content hits; ties keep snapshot order. limit <= 0 returns every hit.
func Query(snapshot *Snapshot, q string, limit int) []Result {
	terms := strings.Fields(strings.ToLower(q))
	if snapshot == nil || len(terms) == 0 {
		return nil
	}

	var results []Result
	for _, record := range snapshot.Records {
		title := strings.ToLower(record.Title)
		content := strings.ToLower(record.Content)

		score := 0
		for _, term := range terms {
			inTitle := strings.Contains(title, term)
			hits := strings.Count(content, term)
			if !inTitle && hits == 0 {
				score = 0
				break
			}
			if inTitle {
				score += titleWeight
			}
			score += hits * contentWeight
		}
		if score > 0 {
			results = append(results, Result{Record: record, Score: score})
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return b.Score - a.Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
