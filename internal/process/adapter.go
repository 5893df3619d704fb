// internal/process/adapter.go
package process

import (
	"fmt"
	"time"
)

// State is a step of one thumbnail invocation.
type State string

const (
	StateReceived    State = "received"
	StateFiltered    State = "filtered"
	StateDownloaded  State = "downloaded"
	StateClassified  State = "classified"
	StateGenerated   State = "generated"
	StateUploaded    State = "uploaded"
	StateDone        State = "done"
	StateSkippedDone State = "skipped_done"
	StateFailedDone  State = "failed_done"
)

// next lists the legal successors of each non-terminal state.
var next = map[State][]State{
	StateReceived:   {StateFiltered},
	StateFiltered:   {StateDownloaded, StateSkippedDone},
	StateDownloaded: {StateClassified},
	StateClassified: {StateGenerated, StateFailedDone},
	StateGenerated:  {StateUploaded, StateFailedDone},
	StateUploaded:   {StateDone},
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateSkippedDone || s == StateFailedDone
}

// Transition is one recorded state change.
type Transition struct {
	State State
	At    time.Time
}

// Job captures the minimal metadata tracked for one invocation.
type Job struct {
	ID      string
	Bucket  string
	Key     string
	State   State
	History []Transition
	Error   string
	Started time.Time
}

func NewJob(id, bucket, key string) *Job {
	now := time.Now()
	return &Job{
		ID:      id,
		Bucket:  bucket,
		Key:     key,
		State:   StateReceived,
		History: []Transition{{State: StateReceived, At: now}},
		Started: now,
	}
}

// Advance moves the job to s, rejecting transitions the lifecycle does not allow.
func (j *Job) Advance(s State) error {
	for _, allowed := range next[j.State] {
		if allowed == s {
			j.State = s
			j.History = append(j.History, Transition{State: s, At: time.Now()})
			return nil
		}
	}
	return fmt.Errorf("invalid transition %s -> %s", j.State, s)
}

// MarkFailed records err and moves the job to StateFailedDone when that is a
// legal next step; fatal errors may leave the job in a non-terminal state.
func (j *Job) MarkFailed(err error) {
	if err != nil {
		j.Error = err.Error()
	}
	_ = j.Advance(StateFailedDone)
}

// Duration is the time since the job was received.
func (j *Job) Duration() time.Duration {
	return time.Since(j.Started)
}
