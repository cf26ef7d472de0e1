package stats

import (
	"math"

	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
)

// Unit is the aggregator's view of one catalog unit (lesson, passage or
// category): its identity and the identifiers of its child items.
type Unit struct {
	ID      int64
	ItemIDs []int64
}

// Record is the aggregator's view of one cumulative progress row.
// Mode is empty for subsystems without modes (listening, sound change).
type Record struct {
	ItemID  int64
	Mode    entity.PracticeMode
	Correct int32
	Total   int32
}

// ModeTotals sums correctness per mode across all records.
type ModeTotals struct {
	Total    int32
	Correct  int32
	Accuracy int32
}

// Summary is the derived aggregate over a catalog and a user's progress
// rows. Recomputed fresh per request; every field is zero when both
// inputs are empty.
type Summary struct {
	TotalUnits     int32
	TotalItems     int32
	PracticedItems int32
	CompletedUnits int32
	Total          int32
	Correct        int32
	Accuracy       int32
	ByMode         map[entity.PracticeMode]ModeTotals
}

// Summarize folds a catalog and a user's progress rows into a Summary.
//
// A record referencing an item absent from every unit still counts
// toward PracticedItems (the row exists, so an attempt happened) but
// can never satisfy a unit's completion test.
func Summarize(units []Unit, records []Record) Summary {
	practiced := make(map[int64]struct{}, len(records))
	byMode := make(map[entity.PracticeMode]ModeTotals)
	var total, correct int32
	for _, rec := range records {
		practiced[rec.ItemID] = struct{}{}
		total += rec.Total
		correct += rec.Correct
		mt := byMode[rec.Mode]
		mt.Total += rec.Total
		mt.Correct += rec.Correct
		byMode[rec.Mode] = mt
	}
	for mode, mt := range byMode {
		mt.Accuracy = Percent(mt.Correct, mt.Total)
		byMode[mode] = mt
	}

	completed := lo.CountBy(units, func(u Unit) bool {
		if len(u.ItemIDs) == 0 {
			return false
		}
		return lo.EveryBy(u.ItemIDs, func(id int64) bool {
			_, ok := practiced[id]
			return ok
		})
	})

	return Summary{
		TotalUnits:     int32(len(units)),
		TotalItems:     int32(lo.SumBy(units, func(u Unit) int { return len(u.ItemIDs) })),
		PracticedItems: int32(len(practiced)),
		CompletedUnits: int32(completed),
		Total:          total,
		Correct:        correct,
		Accuracy:       Percent(correct, total),
		ByMode:         byMode,
	}
}

// Percent returns the rounded-half-up percentage of correct over total,
// and 0 when total is zero so empty inputs never produce NaN.
func Percent(correct, total int32) int32 {
	if total <= 0 {
		return 0
	}
	return int32(math.Floor(float64(correct)/float64(total)*100 + 0.5))
}
