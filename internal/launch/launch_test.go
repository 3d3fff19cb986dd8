package launch

import (
	"context"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/subproc-go/internal/config"
	"github.com/wagiedev/subproc-go/internal/errors"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Test requires a Unix shell")
	}
}

func mustLaunch(t *testing.T, argv []string, opts *config.Options) *Process {
	t.Helper()

	p, err := Launch(context.Background(), argv, opts)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = p.Kill()
		_ = p.Close()
	})

	return p
}

func drain(t *testing.T, seq *LineSeq) []string {
	t.Helper()

	var lines []string
	for line := range seq.All() {
		lines = append(lines, line)
	}

	require.NoError(t, seq.Err())

	return lines
}

func TestLaunch_CapturesStdout(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"echo", "hello"}, nil)

	require.Equal(t, []string{"hello"}, drain(t, p.StdoutLines()))
}

func TestLaunch_ExecutableNotFound(t *testing.T) {
	argv := []string{"definitely-not-a-real-binary-4f2a"}

	_, err := Launch(context.Background(), argv, nil)

	var launchErr *errors.LaunchError

	require.ErrorAs(t, err, &launchErr)
	require.Equal(t, argv, launchErr.Command)
	require.True(t, launchErr.IsSubprocError())
}

func TestLaunch_MissingDirectory(t *testing.T) {
	skipOnWindows(t)

	_, err := Launch(context.Background(), []string{"true"}, &config.Options{
		Dir: "/definitely/not/a/real/dir",
	})

	var launchErr *errors.LaunchError

	require.ErrorAs(t, err, &launchErr)
}

func TestLaunch_WorkingDirectory(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()

	p := mustLaunch(t, []string{"pwd"}, &config.Options{Dir: dir})

	lines := drain(t, p.StdoutLines())
	require.Len(t, lines, 1)
	// On macOS the temp dir may come back with a /private prefix.
	require.Contains(t, lines[0], dir)
}

func TestLaunch_EnvironmentOverlay(t *testing.T) {
	skipOnWindows(t)

	t.Setenv("SUBPROC_TEST_VAR", "inherited")

	p := mustLaunch(t, []string{"sh", "-c", "echo $SUBPROC_TEST_VAR"}, &config.Options{
		Env: map[string]string{"SUBPROC_TEST_VAR": "overlaid"},
	})

	require.Equal(t, []string{"overlaid"}, drain(t, p.StdoutLines()))
}

func TestLaunch_InheritedEnvironment(t *testing.T) {
	skipOnWindows(t)

	t.Setenv("SUBPROC_TEST_VAR", "inherited")

	p := mustLaunch(t, []string{"sh", "-c", "echo $SUBPROC_TEST_VAR"}, nil)

	require.Equal(t, []string{"inherited"}, drain(t, p.StdoutLines()))
}

func TestLaunch_ClearEnvironment(t *testing.T) {
	skipOnWindows(t)

	t.Setenv("SUBPROC_TEST_VAR", "inherited")

	p := mustLaunch(t, []string{"sh", "-c", "echo ${SUBPROC_TEST_VAR:-unset} $ONLY_VAR"}, &config.Options{
		ClearEnv: true,
		Env:      map[string]string{"ONLY_VAR": "kept"},
	})

	require.Equal(t, []string{"unset kept"}, drain(t, p.StdoutLines()))
}

func TestLaunch_RedirectStderr(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"sh", "-c", "echo out; echo err 1>&2"}, &config.Options{
		RedirectStderr: true,
	})

	// A plain interface comparison, not require.Nil: a typed-nil
	// *os.File smuggled into the io.ReadCloser would satisfy reflection
	// based nil checks while bypassing every stderr == nil branch.
	require.True(t, p.Stderr() == nil, "stderr must be absent, not empty, under redirection")
	require.Nil(t, p.StderrLines())

	lines := drain(t, p.StdoutLines())
	require.ElementsMatch(t, []string{"out", "err"}, lines)

	_, err := p.ExitCode(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Close(), "closing a redirected handle must not touch a stderr stream")
}

func TestLaunch_SeparateStderr(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"sh", "-c", "echo out; echo err 1>&2"}, nil)

	require.Equal(t, []string{"out"}, drain(t, p.StdoutLines()))
	require.Equal(t, []string{"err"}, drain(t, p.StderrLines()))
}

func TestProcess_StreamsReadableAfterExit(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"echo", "buffered"}, nil)

	code, err := p.ExitCode(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, code)

	// Output written before exit is still there.
	require.Equal(t, []string{"buffered"}, drain(t, p.StdoutLines()))
}

func TestProcess_StdinRoundTrip(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"cat"}, nil)

	_, err := io.WriteString(p.Stdin(), "first\nsecond\n")
	require.NoError(t, err)
	require.NoError(t, p.Stdin().Close())

	require.Equal(t, []string{"first", "second"}, drain(t, p.StdoutLines()))

	code, err := p.ExitCode(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestProcess_ExitCode(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"sh", "-c", "exit 7"}, nil)

	code, err := p.ExitCode(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, code)
}

func TestProcess_ExitCodeIdempotent(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"sh", "-c", "exit 3"}, nil)

	first, err := p.ExitCode(context.Background())
	require.NoError(t, err)

	start := time.Now()
	second, err := p.ExitCode(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Less(t, time.Since(start), time.Second, "second call must not re-block")
}

func TestProcess_ExitCodeTimeout(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"sleep", "0.3"}, nil)

	_, err := p.ExitCodeTimeout(time.Millisecond)
	require.ErrorIs(t, err, errors.ErrExitTimeout)

	// The timeout affected only the wait; once the process terminates
	// naturally, an unbounded wait yields the real exit code.
	code, err := p.ExitCode(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestProcess_ExitCodeTimeoutAfterExit(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"true"}, nil)

	code, err := p.ExitCode(context.Background())
	require.NoError(t, err)

	// Bounded waits on an exited process return immediately.
	bounded, err := p.ExitCodeTimeout(time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, code, bounded)
}

func TestProcess_ExitCodeContextCancelled(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"sleep", "10"}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.ExitCode(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProcess_Kill(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"sleep", "60"}, nil)

	require.NoError(t, p.Kill())

	code, err := p.ExitCode(context.Background())
	require.NoError(t, err)
	require.Equal(t, -1, code)
}

func TestProcess_CloseIdempotent(t *testing.T) {
	skipOnWindows(t)

	p := mustLaunch(t, []string{"true"}, nil)

	_, err := p.ExitCode(context.Background())
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

func TestLaunch_ContextCancelKillsProcess(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())

	p, err := Launch(ctx, []string{"sleep", "60"}, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = p.Close() })

	cancel()

	code, err := p.ExitCode(context.Background())
	require.NoError(t, err)
	require.Equal(t, -1, code)
}

func TestProcess_Accessors(t *testing.T) {
	skipOnWindows(t)

	argv := []string{"echo", "hi"}
	p := mustLaunch(t, argv, nil)

	require.Equal(t, argv, p.Command())
	require.Positive(t, p.Pid())
	require.NotEmpty(t, p.ID())
	require.NotNil(t, p.Stdin())
	require.NotNil(t, p.Stdout())
}

func TestBuildEnvironment_ClearWithoutOverlayIsEmptyNotNil(t *testing.T) {
	env := BuildEnvironment(&config.Options{ClearEnv: true})

	// A nil env would make os/exec inherit the parent environment.
	require.NotNil(t, env)
	require.Empty(t, env)
}
