package books

import "fmt"

// Stats is progress towards the reading goal.
type Stats struct {
	Completed int
	// Percentage is capped at 100.
	Percentage float64
	// Remaining goes negative once the goal is passed.
	Remaining int
	Goal      int
}

// Compute counts completed books against goal.
func Compute(books []Book, goal int) Stats {
	completed := 0

	for _, book := range books {
		if book.Status == StatusCompleted {
			completed++
		}
	}

	stats := Stats{
		Completed: completed,
		Remaining: goal - completed,
		Goal:      goal,
	}

	if goal > 0 {
		stats.Percentage = float64(completed) / float64(goal) * 100
		if stats.Percentage > 100 {
			stats.Percentage = 100
		}
	}

	return stats
}

// Summary renders the stats as "3 of 12 completed (9 left)". The remainder is left off
// once the goal is reached.
func (s Stats) Summary() string {
	summary := fmt.Sprintf("%d of %d completed", s.Completed, s.Goal)
	if s.Remaining > 0 {
		summary += fmt.Sprintf(" (%d left)", s.Remaining)
	}

	return summary
}
