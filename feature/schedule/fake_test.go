package schedule

import (
	"context"
)

type response struct {
	out []byte
	err error
}

// fakeRunner records commands and answers from a script keyed by Command.String().
type fakeRunner struct {
	calls     []Command
	responses map[string]response
}

func (f *fakeRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	f.calls = append(f.calls, cmd)
	r := f.responses[cmd.String()]
	return r.out, r.err
}

func (f *fakeRunner) on(cmd string, out string, err error) *fakeRunner {
	if f.responses == nil {
		f.responses = map[string]response{}
	}
	f.responses[cmd] = response{out: []byte(out), err: err}
	return f
}
