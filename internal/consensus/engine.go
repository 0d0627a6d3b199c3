// Package consensus aggregates independent reviewer scores into a single
// consensus score. All functions are pure: they operate over an immutable
// snapshot of (reviewer, score) entries and return new values.
package consensus

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cdimurro/trlgauge/internal/models"
	"github.com/cdimurro/trlgauge/internal/scale"
)

// Method selects the aggregation strategy.
type Method string

const (
	MethodWeightedAverage Method = "weighted_average"
	MethodMedian          Method = "median"
	MethodConservative    Method = "conservative"
	MethodDelphi          Method = "delphi"
)

// Known reports whether the method is one of the four implemented strategies.
func (m Method) Known() bool {
	switch m {
	case MethodWeightedAverage, MethodMedian, MethodConservative, MethodDelphi:
		return true
	}
	return false
}

// ErrNoScores is returned when an aggregation is attempted over zero scores.
var ErrNoScores = errors.New("no scores to aggregate")

// Entry pairs one reviewer with their submitted score. Entries are passed in
// session order so tie-breaks ("earliest encountered") are deterministic.
type Entry struct {
	Reviewer models.Reviewer
	Score    models.MaturityScore
}

// Options tunes the Delphi iteration. Zero values select the defaults.
type Options struct {
	DelphiMaxRounds int     // default 5
	OutlierSigma    float64 // default 1.5
}

func (o Options) withDefaults() Options {
	if o.DelphiMaxRounds <= 0 {
		o.DelphiMaxRounds = 5
	}
	if o.OutlierSigma <= 0 {
		o.OutlierSigma = 1.5
	}
	return o
}

// Result is the outcome of one consensus calculation.
type Result struct {
	Score    models.MaturityScore
	Method   Method // the method actually applied
	Rounds   int    // Delphi rounds executed; 1 for single-pass methods
	FellBack bool   // true when an unknown method fell back to weighted average
}

// Calculate dispatches to the selected aggregation method. An unrecognized
// method falls back to weighted average; the fallback is reported on the
// Result so callers can surface it rather than hide it.
func Calculate(method Method, entries []Entry, opts Options) (Result, error) {
	switch method {
	case MethodWeightedAverage:
		score, err := WeightedAverage(entries)
		return Result{Score: score, Method: method, Rounds: 1}, err
	case MethodMedian:
		score, err := Median(entries)
		return Result{Score: score, Method: method, Rounds: 1}, err
	case MethodConservative:
		score, err := Conservative(entries)
		return Result{Score: score, Method: method, Rounds: 1}, err
	case MethodDelphi:
		score, rounds, err := Delphi(entries, opts)
		return Result{Score: score, Method: method, Rounds: rounds}, err
	default:
		score, err := WeightedAverage(entries)
		return Result{Score: score, Method: MethodWeightedAverage, Rounds: 1, FellBack: true}, err
	}
}

// WeightedAverage aggregates by role-weighted mean of the encoded scores and
// the confidence values, decoded back through the scale.
func WeightedAverage(entries []Entry) (models.MaturityScore, error) {
	if len(entries) == 0 {
		return models.MaturityScore{}, ErrNoScores
	}

	var weightSum, scoreSum, confSum float64
	for _, e := range entries {
		w := e.Reviewer.Role.Weight()
		weightSum += w
		scoreSum += scale.Score(e.Score.Level, e.Score.Sublevel) * w
		confSum += float64(e.Score.Confidence) * w
	}

	level, sub := scale.Invert(scoreSum / weightSum)
	return models.MaturityScore{
		Level:         level,
		Sublevel:      sub,
		Confidence:    int(math.Round(confSum / weightSum)),
		Justification: fmt.Sprintf("Weighted average of %d reviewer scores", len(entries)),
		AssessedAt:    time.Now(),
		AssessedBy:    models.SystemAssessor,
	}, nil
}

// Median aggregates by the middle of the sorted encoded scores; an even
// count averages the two middle entries, confidence included.
func Median(entries []Entry) (models.MaturityScore, error) {
	if len(entries) == 0 {
		return models.MaturityScore{}, ErrNoScores
	}

	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return numeric(sorted[i]) < numeric(sorted[j])
	})

	mid := len(sorted) / 2
	var value, conf float64
	if len(sorted)%2 == 1 {
		value = numeric(sorted[mid])
		conf = float64(sorted[mid].Score.Confidence)
	} else {
		value = (numeric(sorted[mid-1]) + numeric(sorted[mid])) / 2
		conf = float64(sorted[mid-1].Score.Confidence+sorted[mid].Score.Confidence) / 2
	}

	level, sub := scale.Invert(value)
	return models.MaturityScore{
		Level:         level,
		Sublevel:      sub,
		Confidence:    int(math.Round(conf)),
		Justification: fmt.Sprintf("Median of %d reviewer scores", len(entries)),
		AssessedAt:    time.Now(),
		AssessedBy:    models.SystemAssessor,
	}, nil
}

// Conservative adopts the single lowest-scoring entry verbatim: level,
// sublevel, and confidence are that reviewer's, and the justification is
// kept with an explanatory prefix. Ties go to the earliest entry.
func Conservative(entries []Entry) (models.MaturityScore, error) {
	if len(entries) == 0 {
		return models.MaturityScore{}, ErrNoScores
	}

	lowest := entries[0]
	for _, e := range entries[1:] {
		if numeric(e) < numeric(lowest) {
			lowest = e
		}
	}

	out := lowest.Score
	out.Justification = fmt.Sprintf("Conservative consensus (lowest score, from %s): %s",
		lowest.Reviewer.Name, lowest.Score.Justification)
	out.AssessedAt = time.Now()
	out.AssessedBy = models.SystemAssessor
	return out, nil
}

// Delphi runs the iterative outlier-trimming consensus. Fewer than three
// reviewers cannot support trimming, so it degrades to a single weighted
// average round. Otherwise, each round computes the mean and population
// standard deviation of the surviving encoded scores, stops once the mean
// moves by less than 0.1 or the deviation drops below 0.5, and otherwise
// discards entries more than OutlierSigma deviations from the mean - never
// shrinking the retained set below two. The final consensus is the weighted
// average of whatever survives. The number of rounds executed is returned.
func Delphi(entries []Entry, opts Options) (models.MaturityScore, int, error) {
	if len(entries) == 0 {
		return models.MaturityScore{}, 0, ErrNoScores
	}
	opts = opts.withDefaults()

	if len(entries) < 3 {
		score, err := WeightedAverage(entries)
		return score, 1, err
	}

	current := entries
	prevMean := math.Inf(1)
	rounds := 0
	for rounds < opts.DelphiMaxRounds {
		rounds++
		mean, stddev := meanStddev(current)
		if math.Abs(mean-prevMean) < 0.1 || stddev < 0.5 {
			break
		}
		prevMean = mean

		kept := current[:0:0]
		for _, e := range current {
			if math.Abs(numeric(e)-mean) <= opts.OutlierSigma*stddev {
				kept = append(kept, e)
			}
		}
		if len(kept) < 2 {
			kept = closestToMean(current, mean, 2)
		}
		current = kept
	}

	score, err := WeightedAverage(current)
	if err != nil {
		return models.MaturityScore{}, rounds, err
	}
	score.Justification = fmt.Sprintf("Delphi consensus after %d rounds with %d reviewers",
		rounds, len(current))
	return score, rounds, nil
}

// numeric returns the scale encoding of an entry's score.
func numeric(e Entry) float64 {
	return scale.Score(e.Score.Level, e.Score.Sublevel)
}

// meanStddev computes the mean and population standard deviation of the
// encoded scores.
func meanStddev(entries []Entry) (float64, float64) {
	var sum float64
	for _, e := range entries {
		sum += numeric(e)
	}
	mean := sum / float64(len(entries))

	var sq float64
	for _, e := range entries {
		d := numeric(e) - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(entries)))
}

// closestToMean returns the n entries nearest the mean, preserving the
// original relative order among the selected entries.
func closestToMean(entries []Entry, mean float64, n int) []Entry {
	idx := make([]int, len(entries))
	for i := range entries {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return math.Abs(numeric(entries[idx[a]])-mean) < math.Abs(numeric(entries[idx[b]])-mean)
	})
	if n > len(idx) {
		n = len(idx)
	}
	picked := append([]int(nil), idx[:n]...)
	sort.Ints(picked)

	out := make([]Entry, 0, n)
	for _, i := range picked {
		out = append(out, entries[i])
	}
	return out
}
