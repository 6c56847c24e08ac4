package thunkx

import "errors"

var (
	// ErrInvalidAction is returned by Dispatch for a value that is neither
	// a thunk nor of the store's action type.
	ErrInvalidAction = errors.New("thunkx: value is neither an action nor a thunk")

	// ErrUnhandledAction is returned by built reducers for an action no case handles.
	ErrUnhandledAction = errors.New("thunkx: unhandled action")

	// ErrDuplicateCase is returned by ReducerBuilder.Build when a key is registered twice.
	ErrDuplicateCase = errors.New("thunkx: duplicate reducer case")

	// ErrNoCases is returned by ReducerBuilder.Build when nothing was registered.
	ErrNoCases = errors.New("thunkx: reducer has no cases")
)
