// Package script runs counter scripts: a starting count and a list of steps
// that dispatch actions or thunks, drain deferred work and check the count.
package script

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/comalice/thunkx/internal/config"
	"github.com/comalice/thunkx/internal/counter"
)

// Thunk names accepted in a step's thunk field.
const (
	ThunkIncrementAsync  = "increment_async"
	ThunkIncrementIfOdd  = "increment_if_odd"
	ThunkIncrementReport = "increment_and_report"
	ThunkAddChecked      = "add_checked"
)

var (
	// ErrInvalidStep is returned for a step that does not do exactly one thing.
	ErrInvalidStep = errors.New("invalid step")
	// ErrExpectation is returned when an expect step does not match the count.
	ErrExpectation = errors.New("expectation failed")
)

// Script is a parsed script file.
type Script struct {
	Name    string `yaml:"name"`
	Initial int    `yaml:"initial"`
	Steps   []Step `yaml:"steps"`
}

// Step is one script step. Exactly one of Action, Thunk, Wait or Expect is set.
type Step struct {
	Action *counter.Action `yaml:"action"`
	Thunk  string          `yaml:"thunk"`
	// Delay is used by increment_async.
	Delay time.Duration `yaml:"delay"`
	// By is used by add_checked.
	By int `yaml:"by"`
	// Wait drains deferred work before the next step.
	Wait   bool `yaml:"wait"`
	Expect *int `yaml:"expect"`
	// Fails marks a step whose dispatch is expected to return an error.
	Fails bool `yaml:"fails"`
}

// Load reads and parses the script at path. The format follows the extension.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data, config.Format(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte, format string) (*Script, error) {
	raw, err := config.Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := config.Decode(raw, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step.
func (s *Script) Validate() error {
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	n := 0
	if st.Action != nil {
		n++
	}
	if st.Thunk != "" {
		n++
	}
	if st.Wait {
		n++
	}
	if st.Expect != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("%w: want one of action, thunk, wait or expect, got %d", ErrInvalidStep, n)
	}
	switch st.Thunk {
	case "", ThunkIncrementIfOdd, ThunkIncrementReport, ThunkAddChecked:
	case ThunkIncrementAsync:
		if st.Delay < 0 {
			return fmt.Errorf("%w: negative delay", ErrInvalidStep)
		}
	default:
		return fmt.Errorf("%w: unknown thunk %q", ErrInvalidStep, st.Thunk)
	}
	if st.Fails && st.Action == nil && st.Thunk == "" {
		return fmt.Errorf("%w: fails is only valid on action and thunk steps", ErrInvalidStep)
	}
	return nil
}

// Describe returns a short label for logs and output.
func (st Step) Describe() string {
	switch {
	case st.Action != nil:
		if st.Action.By != 0 {
			return fmt.Sprintf("action %s %d", st.Action.Type, st.Action.By)
		}
		return "action " + st.Action.Type
	case st.Thunk == ThunkIncrementAsync:
		return fmt.Sprintf("thunk %s %s", st.Thunk, st.Delay)
	case st.Thunk == ThunkAddChecked:
		return fmt.Sprintf("thunk %s %d", st.Thunk, st.By)
	case st.Thunk != "":
		return "thunk " + st.Thunk
	case st.Wait:
		return "wait"
	default:
		return fmt.Sprintf("expect %d", *st.Expect)
	}
}
