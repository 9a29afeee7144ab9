// Package history keeps summaries of finished sessions and derives
// statistics over them. Records are immutable once appended; only cap
// eviction or a full clear removes entries.
package history

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/chrisBokotaII/Nettranscongov2/internal/quiz"
)

// Cap bounds the history log; the oldest records beyond it are evicted.
const Cap = 50

// GeneralLabel is the display group for records taken without a category
// filter.
const GeneralLabel = "General"

// Record summarizes one finished session.
type Record struct {
	ID         string `json:"id"`
	Timestamp  int64  `json:"timestamp"` // epoch millis
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
}

// Percent returns the record's score as a rounded integer percentage.
func (r Record) Percent() int {
	return roundPercent(r.ratio())
}

func (r Record) ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total)
}

// Log is the persistence handle for the history. Implementations enforce
// the cap on append.
type Log interface {
	Append(rec Record) error
	All() ([]Record, error)
	Clear() error
}

// NewRecord builds a history record from a session result.
func NewRecord(res *quiz.Result, at time.Time) Record {
	return Record{
		ID:         uuid.New().String(),
		Timestamp:  at.UnixMilli(),
		Score:      res.Score,
		Total:      res.Total,
		Mode:       string(res.Mode),
		Difficulty: string(res.Difficulty),
		Category:   res.CategoryFilter,
	}
}

// Aggregator holds the history newest-first and computes read-only
// statistics over it.
type Aggregator struct {
	log     Log
	records []Record
}

// NewAggregator loads the persisted history. A read failure degrades to an
// empty history rather than failing.
func NewAggregator(log Log) *Aggregator {
	records, err := log.All()
	if err != nil {
		records = nil
	}
	return &Aggregator{log: log, records: records}
}

// Append prepends a record, evicts beyond the cap, and persists. The
// returned error reports a persistence failure; the in-memory log is
// updated regardless.
func (a *Aggregator) Append(rec Record) error {
	a.records = append([]Record{rec}, a.records...)
	if len(a.records) > Cap {
		a.records = a.records[:Cap]
	}
	return a.log.Append(rec)
}

// Clear empties the log.
func (a *Aggregator) Clear() error {
	a.records = nil
	return a.log.Clear()
}

// Len returns the number of records.
func (a *Aggregator) Len() int { return len(a.records) }

// Records returns the log newest-first.
func (a *Aggregator) Records() []Record {
	out := make([]Record, len(a.records))
	copy(out, a.records)
	return out
}

// AverageScorePercent is the mean of per-record score ratios as a rounded
// percentage; 0 for an empty history.
func (a *Aggregator) AverageScorePercent() int {
	if len(a.records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range a.records {
		sum += r.ratio()
	}
	return roundPercent(sum / float64(len(a.records)))
}

// BestScorePercent is the highest per-record percentage; 0 when empty.
func (a *Aggregator) BestScorePercent() int {
	best := 0
	for _, r := range a.records {
		if p := r.Percent(); p > best {
			best = p
		}
	}
	return best
}

// Point is one entry of the chronological score series.
type Point struct {
	Timestamp int64
	Percent   int
	Mode      string
}

// TimeSeries returns the most recent limit records ordered oldest to
// newest, for a chronological trend view.
func (a *Aggregator) TimeSeries(limit int) []Point {
	n := len(a.records)
	if limit > n {
		limit = n
	}
	if limit <= 0 {
		return nil
	}
	// records is newest-first; take the newest limit and reverse.
	points := make([]Point, 0, limit)
	for i := limit - 1; i >= 0; i-- {
		r := a.records[i]
		points = append(points, Point{
			Timestamp: r.Timestamp,
			Percent:   r.Percent(),
			Mode:      r.Mode,
		})
	}
	return points
}

// CategoryStat is the per-category aggregate.
type CategoryStat struct {
	Name           string
	AveragePercent int
	Count          int
}

// ByCategory groups records by category filter ("Mixed" records are grouped
// under General) and averages the per-record ratios, so each test weighs
// equally regardless of its question count. Sorted by descending average.
func (a *Aggregator) ByCategory() []CategoryStat {
	type acc struct {
		sum   float64
		count int
	}
	groups := make(map[string]*acc)
	for _, r := range a.records {
		name := r.Category
		if name == "Mixed" {
			name = GeneralLabel
		}
		g := groups[name]
		if g == nil {
			g = &acc{}
			groups[name] = g
		}
		g.sum += r.ratio()
		g.count++
	}

	stats := make([]CategoryStat, 0, len(groups))
	for name, g := range groups {
		stats = append(stats, CategoryStat{
			Name:           name,
			AveragePercent: roundPercent(g.sum / float64(g.count)),
			Count:          g.count,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AveragePercent != stats[j].AveragePercent {
			return stats[i].AveragePercent > stats[j].AveragePercent
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

func roundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
