// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/internal/counter"
)

// Op is the action type of the generated reducers.
type Op struct {
	Kind int
}

// GenWideReducer builds a reducer with n cases keyed by Op.Kind, each adding
// its kind to the state.
func GenWideReducer(n int) thunkx.Reducer[int, Op] {
	if n < 1 {
		n = 1
	}
	b := thunkx.NewReducerBuilder[int](func(op Op) int { return op.Kind })
	for i := 0; i < n; i++ {
		b.On(i, func(s int, op Op) (int, error) {
			return s + op.Kind, nil
		})
	}
	return b.MustBuild()
}

// GenNestedThunk returns a thunk that dispatches itself depth levels deep
// and commits one action at the bottom.
func GenNestedThunk(depth int, action Op) thunkx.Thunk[int, Op] {
	if depth <= 1 {
		return func(d *thunkx.Dispatcher[int, Op], _ thunkx.GetState[int]) (any, error) {
			return nil, d.Action(action)
		}
	}
	inner := GenNestedThunk(depth-1, action)
	return func(d *thunkx.Dispatcher[int, Op], _ thunkx.GetState[int]) (any, error) {
		return d.Dispatch(inner)
	}
}

type scriptStep struct {
	Action *counter.Action `yaml:"action,omitempty"`
	Thunk  string          `yaml:"thunk,omitempty"`
	Expect *int            `yaml:"expect,omitempty"`
}

// GenScriptYAML generates a replay script with n increment steps followed
// by an expect step.
func GenScriptYAML(n int) []byte {
	steps := make([]scriptStep, 0, n+1)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			a := counter.IncrementAction()
			steps = append(steps, scriptStep{Action: &a})
		} else {
			steps = append(steps, scriptStep{Thunk: "increment_and_report"})
		}
	}
	want := n
	steps = append(steps, scriptStep{Expect: &want})

	data, err := yaml.Marshal(map[string]any{
		"name":    fmt.Sprintf("bench_%d", n),
		"initial": 0,
		"steps":   steps,
	})
	if err != nil {
		panic(err)
	}
	return data
}
