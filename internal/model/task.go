package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID   = errors.New("model: task id is required")
	ErrEmptyText = errors.New("model: task text is required")
)

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// Counts is the aggregate shown next to the list header.
type Counts struct {
	Total     int
	Completed int
}

func (c Counts) Active() int {
	return c.Total - c.Completed
}

func CountTasks(tasks []Task) Counts {
	out := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			out.Completed++
		}
	}
	return out
}
