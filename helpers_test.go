package thunkx_test

import (
	"errors"

	"github.com/comalice/thunkx"
)

type count struct {
	n int
}

type act struct {
	kind string
}

var errUnknown = errors.New("unknown action")

func countReducer(s *count, a act) (*count, error) {
	switch a.kind {
	case "increment":
		return &count{n: s.n + 1}, nil
	default:
		return nil, errUnknown
	}
}

func decrementReducer(s *count, a act) (*count, error) {
	switch a.kind {
	case "decrement":
		return &count{n: s.n - 1}, nil
	default:
		return nil, errUnknown
	}
}

var (
	reducer    = thunkx.ReducerFunc(countReducer)
	newReducer = thunkx.ReducerFunc(decrementReducer)
	increment  = act{kind: "increment"}
)

func initCount(n int) *count {
	return &count{n: n}
}

type (
	dispatcher = thunkx.Dispatcher[*count, act]
	getter     = thunkx.GetState[*count]
)
