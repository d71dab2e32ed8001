package inmemory

import "sync"

type Snapshot struct {
	AwardTotal    uint64            `json:"award_total"`
	AwardSuccess  uint64            `json:"award_success"`
	AwardConflict uint64            `json:"award_conflict"`
	AwardFailure  uint64            `json:"award_failure"`
	BySource      map[string]uint64 `json:"by_source"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	conflict uint64
	failure  uint64
	bySource map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		bySource: map[string]uint64{},
	}
}

func (r *Recorder) RecordAward(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.bySource[source]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		AwardSuccess:  r.success,
		AwardConflict: r.conflict,
		AwardFailure:  r.failure,
		AwardTotal:    r.success + r.conflict + r.failure,
		BySource:      make(map[string]uint64, len(r.bySource)),
	}
	for k, v := range r.bySource {
		out.BySource[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
