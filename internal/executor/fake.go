package executor

import (
	"context"
	"fmt"
	"strings"
)

// FakeCall records one command issued to a FakeRunner.
type FakeCall struct {
	Dir  string
	Name string
	Args []string
}

// FakeResponse is a scripted result for a FakeRunner.
type FakeResponse struct {
	Output []byte
	Err    error
}

// FakeRunner is a CommandRunner for tests. Responses are keyed by the full
// command line ("git tag -l"); unmatched commands get the Default response.
type FakeRunner struct {
	Calls     []FakeCall
	Responses map[string]FakeResponse
	Default   FakeResponse
}

// NewFakeRunner creates an empty fake that returns the zero Default for
// every command until stubbed.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Responses: map[string]FakeResponse{}}
}

// Stub registers output and an error for an exact command line.
func (f *FakeRunner) Stub(cmdline, output string, err error) {
	f.Responses[cmdline] = FakeResponse{Output: []byte(output), Err: err}
}

// Run records the call and returns the scripted response.
func (f *FakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.Calls = append(f.Calls, FakeCall{Dir: dir, Name: name, Args: args})
	key := name
	if len(args) > 0 {
		key = fmt.Sprintf("%s %s", name, strings.Join(args, " "))
	}
	if resp, ok := f.Responses[key]; ok {
		return resp.Output, resp.Err
	}
	return f.Default.Output, f.Default.Err
}

// CommandLines returns every recorded call as a single command line, in
// order. Convenient for asserting call sequences.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		line := c.Name
		if len(c.Args) > 0 {
			line = fmt.Sprintf("%s %s", c.Name, strings.Join(c.Args, " "))
		}
		lines = append(lines, line)
	}
	return lines
}
