package runner

import "context"

// Scripted Runner for tests. Records every invocation and delegates to the
// optional hooks; without hooks, calls succeed with empty output.
type Fake struct {
	Calls []Invocation

	RunFunc    func(inv Invocation) error
	OutputFunc func(inv Invocation) ([]byte, error)
}

func (f *Fake) Run(_ context.Context, inv Invocation) error {
	f.Calls = append(f.Calls, inv)
	if f.RunFunc != nil {
		return f.RunFunc(inv)
	}
	return nil
}

func (f *Fake) Output(_ context.Context, inv Invocation) ([]byte, error) {
	f.Calls = append(f.Calls, inv)
	if f.OutputFunc != nil {
		return f.OutputFunc(inv)
	}
	return nil, nil
}
