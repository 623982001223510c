package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/paiqm/internal/auth"
	"github.com/jmgilman/paiqm/internal/exec/mocks"
	"github.com/jmgilman/paiqm/internal/launcher"
	"github.com/jmgilman/paiqm/internal/prompt"
	promptmocks "github.com/jmgilman/paiqm/internal/prompt/mocks"
	"github.com/jmgilman/paiqm/internal/registry"
	"github.com/jmgilman/paiqm/internal/runner"
)

func TestPickPackage(t *testing.T) {
	t.Run("returns the selection", func(t *testing.T) {
		p := &promptmocks.PrompterMock{
			SelectFunc: func(title string, options []string) (string, error) {
				return options[1], nil
			},
		}

		id, err := pickPackage(p, []string{"alpha", "beta"})
		require.NoError(t, err)
		assert.Equal(t, "beta", id)
		require.Len(t, p.SelectCalls(), 1)
		assert.Equal(t, []string{"alpha", "beta"}, p.SelectCalls()[0].Options)
	})

	t.Run("without a terminal asks for an id", func(t *testing.T) {
		p := &promptmocks.PrompterMock{
			SelectFunc: func(title string, options []string) (string, error) {
				return "", prompt.ErrNotInteractive
			},
		}

		_, err := pickPackage(p, []string{"alpha"})
		assert.ErrorIs(t, err, prompt.ErrNotInteractive)
		assert.Contains(t, err.Error(), "requires a package id")
	})

	t.Run("empty registry never prompts", func(t *testing.T) {
		p := &promptmocks.PrompterMock{}

		_, err := pickPackage(p, nil)
		require.Error(t, err)
		assert.Empty(t, p.SelectCalls())
	})
}

func TestAskSecret(t *testing.T) {
	t.Run("validates with the credential type", func(t *testing.T) {
		p := &promptmocks.PrompterMock{
			InteractiveFunc: func() bool { return true },
			SecretFunc: func(title string, validate func(string) error) (string, error) {
				assert.ErrorIs(t, validate("no-colon"), auth.ErrInvalidCredential)
				assert.NoError(t, validate("user:pw"))
				return "user:pw", nil
			},
		}

		v, err := askSecret(p, "user:password for example.com", auth.CredentialTypeBasic)
		require.NoError(t, err)
		assert.Equal(t, "user:pw", v)
	})

	t.Run("requires a terminal", func(t *testing.T) {
		p := &promptmocks.PrompterMock{
			InteractiveFunc: func() bool { return false },
		}

		_, err := askSecret(p, "Token", auth.CredentialTypeBearer)
		assert.ErrorIs(t, err, prompt.ErrNotInteractive)
		assert.Empty(t, p.SecretCalls())
	})
}

func TestConfirmRemoval(t *testing.T) {
	interactive := func(answer bool, err error) *promptmocks.PrompterMock {
		return &promptmocks.PrompterMock{
			InteractiveFunc: func() bool { return true },
			ConfirmFunc:     func(title string) (bool, error) { return answer, err },
		}
	}

	t.Run("--yes skips the prompt", func(t *testing.T) {
		p := interactive(false, nil)
		ok, err := confirmRemoval(p, "example.com", true)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, p.ConfirmCalls())
	})

	t.Run("no terminal proceeds", func(t *testing.T) {
		p := &promptmocks.PrompterMock{InteractiveFunc: func() bool { return false }}
		ok, err := confirmRemoval(p, "example.com", false)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("declined", func(t *testing.T) {
		ok, err := confirmRemoval(interactive(false, nil), "example.com", false)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("canceled counts as declined", func(t *testing.T) {
		ok, err := confirmRemoval(interactive(false, prompt.ErrCanceled), "example.com", false)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("accepted", func(t *testing.T) {
		p := interactive(true, nil)
		ok, err := confirmRemoval(p, "example.com", false)
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, p.ConfirmCalls(), 1)
		assert.Contains(t, p.ConfirmCalls()[0].Title, "example.com")
	})
}

func TestReadSecret(t *testing.T) {
	v, err := readSecret(strings.NewReader("  tok3n \nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "tok3n", v)

	v, err = readSecret(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", v)
}

func TestCheckDependencies(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		e := &mocks.ExecutorMock{
			LookPathFunc: func(name string) (string, error) { return "/usr/bin/" + name, nil },
		}
		assert.NoError(t, checkDependencies(e))
		assert.Len(t, e.LookPathCalls(), len(installDeps))
	})

	t.Run("missing git", func(t *testing.T) {
		e := &mocks.ExecutorMock{
			LookPathFunc: func(name string) (string, error) { return "", errors.New("not found") },
		}
		err := checkDependencies(e)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git")
	})
}

func TestHintFor(t *testing.T) {
	tests := []struct {
		name string
		err  *launcher.StageError
		want string
	}{
		{
			name: "registry",
			err:  &launcher.StageError{Stage: launcher.StageRegistry, Err: registry.ErrUnavailable},
			want: "PAIQM_REGISTRY",
		},
		{
			name: "unknown package",
			err:  &launcher.StageError{Package: "nope", Stage: launcher.StageRegistry, Err: registry.ErrUnknownPackage},
			want: "paiqm sync",
		},
		{
			name: "not installed",
			err:  &launcher.StageError{Package: "alpha", Stage: launcher.StageRun, Err: runner.ErrTargetMissing},
			want: "paiqm install alpha",
		},
		{
			name: "tool failure",
			err:  &launcher.StageError{Package: "alpha", Stage: launcher.StageDependencies, Err: errors.New("pip failed")},
			want: "paiqm logs alpha",
		},
		{
			name: "no hint",
			err:  &launcher.StageError{Package: "alpha", Stage: launcher.StageRecord, Err: errors.New("disk full")},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hintFor(tt.err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestPrintSyncReport(t *testing.T) {
	report := &launcher.SyncReport{Entries: []launcher.SyncEntry{
		{ID: "alpha", RemoteVersion: "1.0"},
		{ID: "beta", RemoteVersion: "2.0", InstalledVersion: "1.0", Drift: true},
		{ID: "gamma", RemoteVersion: "3.0", InstalledVersion: "3.0"},
		{ID: "delta", Error: "manifest unreachable", Err: errors.New("manifest unreachable")},
	}}

	var buf bytes.Buffer
	printSyncReport(&buf, report)

	assert.Equal(t, `alpha: remote v1.0
beta: remote v2.0 (installed v1.0, update available)
gamma: remote v3.0 (installed, up to date)
delta: unavailable (manifest unreachable)
`, buf.String())
}
