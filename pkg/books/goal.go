package books

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/matt-steen/reading-list/pkg/storage"
)

// KeyGoal is the storage key of the reading goal.
const KeyGoal = "reading-goal"

// DefaultGoal is the goal used before one has been set.
const DefaultGoal = 12

// Goal is the number of books the user wants to finish this year. It is never below 1.
type Goal struct {
	value *storage.Value[int]
}

// NewGoal loads the goal from store.
func NewGoal(ctx context.Context, store *storage.ValueStore) *Goal {
	return &Goal{value: storage.NewValue(ctx, store, KeyGoal, DefaultGoal)}
}

// Get returns the current goal.
func (g *Goal) Get() int {
	return g.value.Get()
}

// Set stores n, raised to 1 if it is lower.
func (g *Goal) Set(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}

	return g.value.Set(ctx, n)
}

// ParseGoal turns goal input into a goal. Anything that isn't a number becomes 1, as do
// numbers below 1; fractions are truncated.
func ParseGoal(text string) int {
	text = strings.TrimSpace(text)

	n, err := strconv.Atoi(text)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || math.IsNaN(f) || f < 1 {
			return 1
		}

		if f > float64(maxGoal) {
			return maxGoal
		}

		n = int(f)
	}

	if n < 1 {
		return 1
	}

	return n
}

const maxGoal = 1<<31 - 1
