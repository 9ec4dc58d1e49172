package selector

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/steelcutops/xsuper/xsuper"
	cm "github.com/steelcutops/xsuper/xsuper/commandmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockCommandManager struct {
	Paths  map[string]string
	Result cm.CommandResult
	Err    error

	ran   cm.CommandConfig
	stdin string
}

func (m *MockCommandManager) LookPath(name string) (string, error) {
	if path, ok := m.Paths[name]; ok {
		return path, nil
	}
	return "", &xsuper.Error{Op: "resolve", Name: name, Err: xsuper.ErrExecutableNotFound}
}

func (m *MockCommandManager) Run(ctx context.Context, config cm.CommandConfig) (cm.CommandResult, error) {
	m.ran = config
	if config.Stdin != nil {
		data, _ := io.ReadAll(config.Stdin)
		m.stdin = string(data)
	}
	return m.Result, m.Err
}

func (m *MockCommandManager) RunInteractive(ctx context.Context, config cm.CommandConfig) (int, error) {
	return 0, errors.New("not expected")
}

func TestSelect(t *testing.T) {
	mockCmd := &MockCommandManager{
		Paths:  map[string]string{"fzf": "/usr/bin/fzf"},
		Result: cm.CommandResult{STDOUT: []byte("vim\nzsh\n")},
	}
	s := &FuzzySelector{CommandManager: mockCmd, Programs: []string{"fzf", "sk"}}

	selected, err := s.Select(context.Background(), []string{"bash", "vim", "zsh"}, "/usr/bin/pacman -S -i")
	require.NoError(t, err)
	assert.Equal(t, []string{"vim", "zsh"}, selected)

	assert.Equal(t, "/usr/bin/fzf", mockCmd.ran.Command)
	assert.Equal(t, []string{"--multi", "--preview", "/usr/bin/pacman -S -i {}", "--preview-window", "right:66%:wrap"}, mockCmd.ran.Args)
	assert.Equal(t, "bash\nvim\nzsh", mockCmd.stdin)
	assert.Same(t, os.Stderr, mockCmd.ran.Stderr)
}

func TestSelectStderrOverride(t *testing.T) {
	mockCmd := &MockCommandManager{
		Paths:  map[string]string{"fzf": "/usr/bin/fzf"},
		Result: cm.CommandResult{STDOUT: []byte("vim\n")},
	}
	tty := &strings.Builder{}
	s := &FuzzySelector{CommandManager: mockCmd, Programs: []string{"fzf"}, Stderr: tty}

	_, err := s.Select(context.Background(), []string{"vim"}, "pacman -S -i")
	require.NoError(t, err)
	assert.Same(t, tty, mockCmd.ran.Stderr)
}

func TestSelectFallsBackToSkim(t *testing.T) {
	mockCmd := &MockCommandManager{
		Paths:  map[string]string{"sk": "/usr/bin/sk"},
		Result: cm.CommandResult{STDOUT: []byte("vim\n")},
	}
	s := &FuzzySelector{CommandManager: mockCmd, Programs: []string{"fzf", "sk"}, PreviewWindow: "down:50%"}

	_, err := s.Select(context.Background(), []string{"vim"}, "apt-cache show")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/sk", mockCmd.ran.Command)
	assert.Equal(t, "down:50%", mockCmd.ran.Args[4])
}

func TestSelectAborted(t *testing.T) {
	mockCmd := &MockCommandManager{
		Paths:  map[string]string{"fzf": "/usr/bin/fzf"},
		Result: cm.CommandResult{ExitCode: 130},
	}
	s := &FuzzySelector{CommandManager: mockCmd, Programs: []string{"fzf"}}

	_, err := s.Select(context.Background(), []string{"vim"}, "pacman -S -i")
	assert.True(t, errors.Is(err, xsuper.ErrSelectionAborted))
}

func TestSelectNoMatch(t *testing.T) {
	mockCmd := &MockCommandManager{
		Paths:  map[string]string{"fzf": "/usr/bin/fzf"},
		Result: cm.CommandResult{ExitCode: 1},
	}
	s := &FuzzySelector{CommandManager: mockCmd, Programs: []string{"fzf"}}

	selected, err := s.Select(context.Background(), []string{"vim"}, "pacman -S -i")
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSelectFinderError(t *testing.T) {
	mockCmd := &MockCommandManager{
		Paths:  map[string]string{"fzf": "/usr/bin/fzf"},
		Result: cm.CommandResult{ExitCode: 2},
	}
	s := &FuzzySelector{CommandManager: mockCmd, Programs: []string{"fzf"}}

	_, err := s.Select(context.Background(), []string{"vim"}, "pacman -S -i")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xsuper.ErrCommandIO))
	assert.Contains(t, err.Error(), "exit status 2")
}

func TestSelectNoFinderInstalled(t *testing.T) {
	s := &FuzzySelector{CommandManager: &MockCommandManager{}, Programs: []string{"fzf", "sk"}}

	_, err := s.Select(context.Background(), []string{"vim"}, "pacman -S -i")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xsuper.ErrExecutableNotFound))
	assert.Contains(t, err.Error(), "fzf")
	assert.Contains(t, err.Error(), "sk")
}

func TestSelectNoFinderConfigured(t *testing.T) {
	s := &FuzzySelector{CommandManager: &MockCommandManager{}}

	_, err := s.Select(context.Background(), []string{"vim"}, "pacman -S -i")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xsuper.ErrExecutableNotFound))
}

func TestPreviewCommand(t *testing.T) {
	assert.Equal(t, "/usr/bin/apt-cache show {}", PreviewCommand("/usr/bin/apt-cache show"))
}
