package priority

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrBadWeights reports a weight set that does not sum to one.
var ErrBadWeights = errors.New("priority: weights must sum to 1.0")

// Weights are the fixed blend factors of the score formula. They must sum
// to 1.0 before the time boost multiplier is applied.
type Weights struct {
	Frequency  float64
	Difficulty float64
	Status     float64
	Accuracy   float64
}

// DefaultWeights returns the production blend.
func DefaultWeights() Weights {
	return Weights{Frequency: 0.4, Difficulty: 0.2, Status: 0.3, Accuracy: 0.1}
}

// Validate fails when the weights do not sum to 1.0.
func (w Weights) Validate() error {
	sum := w.Frequency + w.Difficulty + w.Status + w.Accuracy
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("%w: got %g", ErrBadWeights, sum)
	}
	return nil
}

// Engine scores and ranks learning items.
type Engine struct {
	weights     Weights
	statusMults map[Status]float64
}

// NewEngine creates an engine, failing fast on invalid weights.
func NewEngine(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		weights: w,
		statusMults: map[Status]float64{
			StatusNotStarted: 1.0,
			StatusLearning:   1.2,
			StatusMastered:   0.3,
		},
	}, nil
}

// Score computes the learning priority of one item. The four terms are
// deliberately heterogeneous in scale (frequency saturates at 10, the rest
// stay near 1); that matches the calibrated product behavior and must not
// be normalized away.
func (e *Engine) Score(item LexicalItem, p Progress) float64 {
	frequencyScore := math.Min(float64(item.Frequency)/10.0, 10.0)
	difficultyScore := float64(6-item.Difficulty) / 5.0

	statusMult, ok := e.statusMults[p.Status]
	if !ok {
		statusMult = 1.0 // unknown statuses score like not started
	}

	accuracyAdj := 1.0
	if p.ReviewCount > 0 {
		if p.AccuracyRate < 50 {
			accuracyAdj = 1.5
		} else if p.AccuracyRate > 80 {
			accuracyAdj = 0.7
		}
	}

	timeBoost := 1.0
	if !p.LastReviewedAt.IsZero() {
		timeBoost = 1.1
	}

	return (frequencyScore*e.weights.Frequency +
		difficultyScore*e.weights.Difficulty +
		statusMult*e.weights.Status +
		accuracyAdj*e.weights.Accuracy) * timeBoost
}

// ListOptions filter a priority list. Zero values mean "no filter"; a zero
// Limit returns everything.
type ListOptions struct {
	Type     ItemType
	Category string
	Status   Status
	Limit    int
}

// PriorityList scores every entry surviving the filters and returns them
// sorted by learning priority descending. The sort is stable, so entries
// with equal scores keep their input order.
func (e *Engine) PriorityList(entries []Entry, opts ListOptions) []RankedItem {
	ranked := make([]RankedItem, 0, len(entries))
	for _, en := range entries {
		if opts.Type != "" && en.Item.Type != opts.Type {
			continue
		}
		if opts.Category != "" && en.Item.Category != opts.Category {
			continue
		}
		if opts.Status != "" && en.Progress.Status != opts.Status {
			continue
		}
		ranked = append(ranked, RankedItem{
			Item:             en.Item,
			Progress:         en.Progress,
			LearningPriority: e.Score(en.Item, en.Progress),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LearningPriority > ranked[j].LearningPriority
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	return ranked
}

// Recommendations partitions a learner's items into today's study sets.
type Recommendations struct {
	New        []RankedItem
	Review     []RankedItem
	Struggling []RankedItem
}

const (
	strugglingAccuracy = 60
	strugglingCap      = 5
)

// Recommendations builds the daily study sets: items in learning fill half
// the goal as review candidates, struggling items (accuracy below 60,
// worst first) are capped at five, and new items fill the remaining slots.
func (e *Engine) Recommendations(entries []Entry, dailyGoal int) Recommendations {
	var rec Recommendations

	rec.Review = e.PriorityList(entries, ListOptions{Status: StatusLearning, Limit: dailyGoal / 2})

	learning := e.PriorityList(entries, ListOptions{Status: StatusLearning})
	for _, it := range learning {
		if it.Progress.AccuracyRate < strugglingAccuracy {
			rec.Struggling = append(rec.Struggling, it)
		}
	}
	sort.SliceStable(rec.Struggling, func(i, j int) bool {
		return rec.Struggling[i].Progress.AccuracyRate < rec.Struggling[j].Progress.AccuracyRate
	})
	if len(rec.Struggling) > strugglingCap {
		rec.Struggling = rec.Struggling[:strugglingCap]
	}

	if remaining := dailyGoal - len(rec.Review); remaining > 0 {
		rec.New = e.PriorityList(entries, ListOptions{Status: StatusNotStarted, Limit: remaining})
	}
	return rec
}

// CategoryStats summarizes one category's learning progress.
type CategoryStats struct {
	Total       int
	NotStarted  int
	Learning    int
	Mastered    int
	MasteryRate float64 // percent
}

// CategoryBreakdown aggregates per-category counts and mastery rates. An
// empty category reports a mastery rate of zero, never a division error.
func CategoryBreakdown(entries []Entry) map[string]CategoryStats {
	breakdown := make(map[string]CategoryStats)
	for _, en := range entries {
		stats := breakdown[en.Item.Category]
		stats.Total++
		switch en.Progress.Status {
		case StatusLearning:
			stats.Learning++
		case StatusMastered:
			stats.Mastered++
		default:
			stats.NotStarted++
		}
		breakdown[en.Item.Category] = stats
	}
	for cat, stats := range breakdown {
		if stats.Total > 0 {
			stats.MasteryRate = float64(stats.Mastered) / float64(stats.Total) * 100
			breakdown[cat] = stats
		}
	}
	return breakdown
}

const (
	reviewAccuracyFloor = 70
	reviewStaleAfter    = 3 * 24 * time.Hour
	reviewMinStreak     = 2
)

// NeedsReview reports whether an item is due: never reviewed, accuracy below
// 70 percent, stale for more than three days, or still in learning with a
// streak shorter than two.
func NeedsReview(p Progress, now time.Time) bool {
	if p.ReviewCount == 0 {
		return true
	}
	if p.AccuracyRate < reviewAccuracyFloor {
		return true
	}
	if !p.LastReviewedAt.IsZero() && now.Sub(p.LastReviewedAt) > reviewStaleAfter {
		return true
	}
	if p.Status == StatusLearning && p.ConsecutiveCorrect < reviewMinStreak {
		return true
	}
	return false
}
