package service

import (
	"sort"

	"interview-prep-be/internal/entity"
)

// OrderQuestions sorts pinned questions first, then by ascending creation time.
// Questions with equal keys keep their input order, so passing them in
// reference-list order makes the result deterministic.
func OrderQuestions(questions []*entity.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		a, b := questions[i], questions[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
