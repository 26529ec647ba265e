package model

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// SummaryKind tells which part of a Summary is populated
type SummaryKind string

const (
	SummaryKindDescribe  SummaryKind = "describe"
	SummaryKindFrequency SummaryKind = "frequency"
)

// DefaultLanguage is used when SummaryOptions.Language is empty
const DefaultLanguage = "en"

// StopWordSource returns the stop words of a language
type StopWordSource interface {
	StopWords(language string) (map[string]struct{}, error)
}

// SummaryOptions configures question summaries. A nil StopWords disables filtering.
type SummaryOptions struct {
	Language  string
	StopWords StopWordSource
}

// Summary is the descriptive view of one question
type Summary struct {
	Name     string      `json:"name"`
	Question string      `json:"question"`
	Kind     SummaryKind `json:"kind"`
	Stats    *Describe   `json:"stats,omitempty"`
	Counts   []Frequency `json:"counts,omitempty"`
}

// Frequency is the count of one value
type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Describe holds descriptive statistics over non-missing numeric answers.
// Statistics that are undefined for the sample size are NaN.
type Describe struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

type describeJSON struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Std   *float64 `json:"std"`
	Min   *float64 `json:"min"`
	P25   *float64 `json:"25%"`
	P50   *float64 `json:"50%"`
	P75   *float64 `json:"75%"`
	Max   *float64 `json:"max"`
}

func (d Describe) MarshalJSON() ([]byte, error) {
	return json.Marshal(describeJSON{
		Count: d.Count,
		Mean:  nullable(d.Mean),
		Std:   nullable(d.Std),
		Min:   nullable(d.Min),
		P25:   nullable(d.P25),
		P50:   nullable(d.P50),
		P75:   nullable(d.P75),
		Max:   nullable(d.Max),
	})
}

func (d *Describe) UnmarshalJSON(data []byte) error {
	var raw describeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Describe{
		Count: raw.Count,
		Mean:  orNaN(raw.Mean),
		Std:   orNaN(raw.Std),
		Min:   orNaN(raw.Min),
		P25:   orNaN(raw.P25),
		P50:   orNaN(raw.P50),
		P75:   orNaN(raw.P75),
		Max:   orNaN(raw.Max),
	}
	return nil
}

func nullable(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func orNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

func describe(values []float64) Describe {
	nan := math.NaN()
	d := Describe{Count: len(values), Mean: nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan}
	if len(values) == 0 {
		return d
	}

	data := stats.Float64Data(values)
	d.Mean, _ = stats.Mean(data)
	d.Min, _ = stats.Min(data)
	d.Max, _ = stats.Max(data)
	if len(values) > 1 {
		d.Std, _ = stats.StandardDeviationSample(data)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	d.P25 = percentile(sorted, 0.25)
	d.P50 = percentile(sorted, 0.5)
	d.P75 = percentile(sorted, 0.75)
	return d
}

// percentile interpolates linearly between the closest ranks of sorted data
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// topCounts counts tokens in descending frequency, ties in first-seen order
func topCounts(tokens []string, limit int) []Frequency {
	index := make(map[string]int)
	var counts []Frequency
	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			counts[i].Count++
			continue
		}
		index[tok] = len(counts)
		counts = append(counts, Frequency{Value: tok, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
