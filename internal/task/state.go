package task

import (
	"errors"
	"time"
)

// State represents the lifecycle status of a task held by the fake API
type State int

const (
	StatePending State = iota
	StateCompleted
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// ParseState maps a status string to a State. ok is false for unknown input.
func ParseState(s string) (State, bool) {
	switch s {
	case "pending":
		return StatePending, true
	case "completed":
		return StateCompleted, true
	case "canceled":
		return StateCanceled, true
	default:
		return StatePending, false
	}
}

// IsFinal reports whether no further transitions are possible.
func (s State) IsFinal() bool {
	return s == StateCompleted || s == StateCanceled
}

var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrTaskNotFound      = errors.New("Task not found")
	ErrAlreadyCanceled   = errors.New("Task has already been canceled")
	ErrAlreadyCompleted  = errors.New("Task has already been completed")
)

// ValidTransitions lists the targets reachable from each state.
var ValidTransitions = map[State][]State{
	StatePending:   {StateCompleted, StateCanceled},
	StateCompleted: {}, // Terminal state
	StateCanceled:  {}, // Terminal state
}

// finalStateErrors explains why a terminal task cannot move again
var finalStateErrors = map[State]error{
	StateCompleted: ErrAlreadyCompleted,
	StateCanceled:  ErrAlreadyCanceled,
}

// CanTransitionTo reports whether s may move to target.
func (s State) CanTransitionTo(target State) bool {
	validTargets, ok := ValidTransitions[s]
	if !ok {
		return false
	}
	for _, v := range validTargets {
		if v == target {
			return true
		}
	}
	return false
}

// StateMachine applies lifecycle transitions to a single task.
type StateMachine struct {
	task *Task
}

// NewStateMachine wraps t. Transitions mutate t in place.
func NewStateMachine(t *Task) *StateMachine {
	return &StateMachine{task: t}
}

// Transition moves the task to target and stamps its timestamps.
func (sm *StateMachine) Transition(target State) error {
	if !sm.task.State.CanTransitionTo(target) {
		if err, ok := finalStateErrors[sm.task.State]; ok {
			return err
		}
		return ErrInvalidTransition
	}

	now := time.Now().UTC()
	sm.task.State = target
	sm.task.UpdatedAt = now

	if target.IsFinal() {
		sm.task.CompletedAt = &now
	}

	return nil
}

// Complete transitions the task to completed state and records the response
func (sm *StateMachine) Complete(response map[string]any) error {
	if err := sm.Transition(StateCompleted); err != nil {
		return err
	}
	sm.task.Response = response
	return nil
}

// Cancel transitions the task to canceled state
func (sm *StateMachine) Cancel() error {
	return sm.Transition(StateCanceled)
}
