package devtask

import "fmt"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusTesting    Status = "testing"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusTesting, StatusBlocked, StatusDone:
		return true
	}
	return false
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid dev task status: %q", s)
	}
	return st, nil
}

type Type string

const (
	TypeTask Type = "task"
	TypeBug  Type = "bug"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	return t == TypeTask || t == TypeBug
}

// NewType parses a dev task type; an empty string defaults to task.
func NewType(s string) (Type, error) {
	if s == "" {
		return TypeTask, nil
	}
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid dev task type: %q", s)
	}
	return t, nil
}
