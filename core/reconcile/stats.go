package reconcile

const (
	// EnrichSampleSize caps the unmatched sample of an enrichment pass.
	EnrichSampleSize = 5
	// BackfillSampleSize caps the not-found sample of a backfill run.
	BackfillSampleSize = 20
)

// MatchStats accumulates the outcome of one resolution pass.
type MatchStats struct {
	Matched    int      `json:"matched"`
	NotMatched int      `json:"not_matched"`
	Unmatched  []string `json:"unmatched_sample"`
	SampleSize int      `json:"-"`
}

// NewMatchStats creates an empty accumulator keeping at most sampleSize unmatched names.
func NewMatchStats(sampleSize int) MatchStats {
	return MatchStats{Unmatched: []string{}, SampleSize: sampleSize}
}

// Hit records a match.
func (s *MatchStats) Hit() {
	s.Matched++
}

// Miss records a record without a match. Unkeyable names are counted, not sampled.
func (s *MatchStats) Miss(name string) {
	s.NotMatched++
	if name == "" || len(s.Unmatched) >= s.SampleSize {
		return
	}
	s.Unmatched = append(s.Unmatched, name)
}

// NameSet is an insertion-ordered set of names.
type NameSet struct {
	seen  map[string]struct{}
	order []string
}

// Add inserts name unless it is already present.
func (s *NameSet) Add(name string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.order = append(s.order, name)
}

// Len returns the number of distinct names.
func (s *NameSet) Len() int {
	return len(s.order)
}

// Sample returns the first n names in insertion order and how many were left out.
func (s *NameSet) Sample(n int) (sample []string, overflow int) {
	if len(s.order) <= n {
		return append([]string{}, s.order...), 0
	}
	return append([]string{}, s.order[:n]...), len(s.order) - n
}
