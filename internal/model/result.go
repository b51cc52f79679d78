package model

import (
	"math"
	"time"
)

// Result is a graded entry.
//
// No is the raw database key. ID mirrors No for clients that expect an
// "id" field, and Rank is the 1-based position in grade-descending order;
// neither is stored.
type Result struct {
	No        int64     `db:"no" json:"no"`
	ID        int64     `db:"-" json:"id"`
	Name      string    `db:"name" json:"name" validate:"required"`
	Category  string    `db:"category" json:"category"`
	Grade     float64   `db:"grade" json:"grade"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Rank      int       `db:"-" json:"rank"`
}

// Rank assigns ID and Rank to results that are already sorted by grade,
// highest first. The slice is modified in place and returned.
func Rank(results []Result) []Result {
	for i := range results {
		results[i].ID = results[i].No
		results[i].Rank = i + 1
	}
	return results
}

// GradeRow is the projection read for result statistics.
type GradeRow struct {
	Grade    float64 `db:"grade"`
	Category string  `db:"category"`
}

// ResultsStats summarizes the results table.
type ResultsStats struct {
	TotalStudents   int            `json:"total_students"`
	AverageGrade    int            `json:"average_grade"`
	TopGrade        float64        `json:"top_grade"`
	CategoriesCount map[string]int `json:"categories_count"`
}

// EmptyResultsStats is the all-zero stats value.
func EmptyResultsStats() ResultsStats {
	return ResultsStats{CategoriesCount: map[string]int{}}
}

// SummarizeGrades computes count, rounded mean, maximum and per-category
// counts. The mean rounds half up, so 76.5 becomes 77.
func SummarizeGrades(rows []GradeRow) ResultsStats {
	stats := EmptyResultsStats()
	if len(rows) == 0 {
		return stats
	}

	var sum float64
	top := math.Inf(-1)
	for _, r := range rows {
		sum += r.Grade
		if r.Grade > top {
			top = r.Grade
		}
		stats.CategoriesCount[r.Category]++
	}

	stats.TotalStudents = len(rows)
	stats.AverageGrade = int(math.Floor(sum/float64(len(rows)) + 0.5))
	stats.TopGrade = top
	return stats
}
