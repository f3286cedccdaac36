package git

import (
	"context"
	"io"
)

// mockRunner records commands instead of running them.
type mockRunner struct {
	Commands  []string
	Dirs      []string
	Output    map[string]string
	ExecuteFn func(command string) error
}

func (m *mockRunner) Execute(_ context.Context, command string, cwd string, _ io.Reader, stdout io.Writer, _ io.Writer) error {
	m.Commands = append(m.Commands, command)
	m.Dirs = append(m.Dirs, cwd)
	if out, ok := m.Output[command]; ok && stdout != nil {
		_, _ = io.WriteString(stdout, out)
	}
	if m.ExecuteFn != nil {
		return m.ExecuteFn(command)
	}
	return nil
}
