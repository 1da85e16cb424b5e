package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/devmadhava/habitx/internal/models"
)

// Result holds the streak metrics computed for one habit. A zero Result is a
// valid outcome for a habit with no completions, distinct from an error.
type Result struct {
	Longest int     `json:"longest"`
	Current int     `json:"current"`
	Average float64 `json:"average"`
	Runs    []int   `json:"runs,omitempty"` // per-run lengths, oldest first
}

// run is one maximal sequence of consecutive calendar keys.
type run struct {
	length int
	end    Key
}

// Compute derives streak metrics from raw completion instants. Instants are
// normalized to calendar keys under loc and freq, deduplicated and sorted;
// now anchors the current-streak check.
func Compute(instants []time.Time, loc *time.Location, freq models.Frequency, now time.Time) (Result, error) {
	keys := make([]Key, 0, len(instants))
	for _, instant := range instants {
		keys = append(keys, NewKey(instant, loc, freq))
	}
	return ComputeKeys(keys, NewKey(now, loc, freq))
}

// ComputeKeys derives streak metrics from pre-normalized calendar keys. All
// keys must share now's frequency; a mixed set is a caller bug and fails with
// ErrInvariantViolation before any computation.
func ComputeKeys(keys []Key, now Key) (Result, error) {
	for _, k := range keys {
		if k.freq != now.freq {
			return Result{}, fmt.Errorf("%w: calendar key frequency %q mixed with %q", ErrInvariantViolation, k.freq, now.freq)
		}
	}

	keys = dedupe(keys)
	if len(keys) == 0 {
		return Result{}, nil
	}

	runs := segment(keys)

	result := Result{Runs: make([]int, 0, len(runs))}
	total := 0
	for _, r := range runs {
		result.Runs = append(result.Runs, r.length)
		total += r.length
		if r.length > result.Longest {
			result.Longest = r.length
		}
		// The streak is still alive if its last key is the current period or
		// the one just before it: a completion counts as current until the
		// next period fully elapses without one.
		if r.end.Equal(now) || r.end.Equal(now.Prev()) {
			result.Current = r.length
		}
	}
	result.Average = float64(total) / float64(len(runs))

	return result, nil
}

// dedupe sorts keys ascending and collapses duplicates. Multiple completions
// in the same local day or week count once for streak purposes.
func dedupe(keys []Key) []Key {
	if len(keys) == 0 {
		return keys
	}

	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	out := sorted[:1]
	for _, k := range sorted[1:] {
		if !k.Equal(out[len(out)-1]) {
			out = append(out, k)
		}
	}
	return out
}

// segment walks sorted, deduplicated keys and splits them into runs. A new
// run starts whenever a key is not the successor of the previous one.
func segment(keys []Key) []run {
	runs := []run{{length: 1, end: keys[0]}}
	for _, k := range keys[1:] {
		last := &runs[len(runs)-1]
		if k.Equal(last.end.Next()) {
			last.length++
			last.end = k
		} else {
			runs = append(runs, run{length: 1, end: k})
		}
	}
	return runs
}
