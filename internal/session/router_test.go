package session

import (
	"fmt"
	"testing"

	"github.com/roninagent/ronin/internal/tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTool struct {
	name string
	args []string
	err  error
}

func (t *recordingTool) Name() string        { return t.name }
func (t *recordingTool) Signature() string   { return t.name }
func (t *recordingTool) Description() string { return "recording stub" }
func (t *recordingTool) Execute(_ tool.Context, args []string) (string, error) {
	t.args = args
	if t.err != nil {
		return "", t.err
	}
	return "tool ran", nil
}

func TestRoute_RejectsInteractivePrograms(t *testing.T) {
	env := &fakeEnv{}
	s := newTestSession(t, &scriptedAgent{}, env)

	for _, action := range []string{"vim foo.py", "nano /etc/hosts"} {
		out, done := s.Route(action)
		assert.Equal(t, MsgInteractiveNotAllowed, out)
		assert.False(t, done)
	}
	assert.Empty(t, env.commands, "policy rejections must not reach the environment")
}

func TestRoute_RejectsMultiLinePython(t *testing.T) {
	env := &fakeEnv{}
	s := newTestSession(t, &scriptedAgent{}, env)

	out, done := s.Route("python\nprint('hi')")
	assert.Equal(t, MsgInteractiveNotAllowed, out)
	assert.False(t, done)
	assert.Empty(t, env.commands)
}

func TestRoute_AllowsSingleLinePython(t *testing.T) {
	env := &fakeEnv{output: "1\n"}
	s := newTestSession(t, &scriptedAgent{}, env)

	out, done := s.Route(`python -c 'print(1)'`)
	assert.NotEqual(t, MsgInteractiveNotAllowed, out)
	assert.False(t, done)
	require.Len(t, env.commands, 1)
}

func TestRoute_DispatchesRegisteredTool(t *testing.T) {
	rec := &recordingTool{name: "find_file"}
	env := &fakeEnv{}
	s := newTestSession(t, &scriptedAgent{}, env, WithTools(rec))

	out, done := s.Route(`find_file "main.go" src`)
	assert.Equal(t, "tool ran", out)
	assert.False(t, done)
	assert.Equal(t, []string{"main.go", "src"}, rec.args)
	assert.Empty(t, env.commands)
}

func TestRoute_ToolFailureBecomesText(t *testing.T) {
	rec := &recordingTool{name: "flaky", err: fmt.Errorf("disk on fire")}
	s := newTestSession(t, &scriptedAgent{}, &fakeEnv{}, WithTools(rec))

	out, done := s.Route("flaky")
	assert.False(t, done)
	assert.Contains(t, out, "disk on fire")
}

func TestRoute_ShellFallbackJoinsArgs(t *testing.T) {
	env := &fakeEnv{output: "total 0\n"}
	s := newTestSession(t, &scriptedAgent{}, env)

	out, done := s.Route("ls -la")
	assert.Equal(t, "total 0\n", out)
	assert.False(t, done)
	assert.Equal(t, []string{"ls -la"}, env.commands)
}

func TestRoute_ShellNonZeroExitIsFixedMessage(t *testing.T) {
	env := &fakeEnv{output: "not found", exitCode: 127}
	s := newTestSession(t, &scriptedAgent{}, env)

	out, done := s.Route("frobnicate --now")
	assert.Equal(t, MsgBashFailed, out)
	assert.False(t, done)
}

func TestRoute_ParseFailureBecomesText(t *testing.T) {
	env := &fakeEnv{}
	s := newTestSession(t, &scriptedAgent{}, env)

	out, done := s.Route(`grep "unterminated`)
	assert.False(t, done)
	assert.NotEmpty(t, out)
	assert.Empty(t, env.commands)
}

func TestRoute_EditFileUsesDiffApplier(t *testing.T) {
	var got string
	applier := func(_ tool.Context, raw string) (string, error) {
		got = raw
		return "patched", nil
	}
	// edit_file is registered as a builtin-shaped name too; the router must
	// prefer the diff routine regardless.
	rec := &recordingTool{name: "edit_file"}
	s := newTestSession(t, &scriptedAgent{}, &fakeEnv{}, WithTools(rec), WithDiffApplier(applier))

	action := "edit_file\n--- a/f\n+++ b/f\n@@ -1 +1 @@\n-x\n+y"
	out, done := s.Route(action)
	assert.Equal(t, "patched", out)
	assert.False(t, done)
	assert.Equal(t, action, got)
	assert.Nil(t, rec.args)
}

func TestRoute_DiffFailureIsReportedNotSwallowed(t *testing.T) {
	applier := func(_ tool.Context, _ string) (string, error) {
		return "", fmt.Errorf("hunk context mismatch")
	}
	s := newTestSession(t, &scriptedAgent{}, &fakeEnv{}, WithDiffApplier(applier))

	out, done := s.Route("edit_file\nbogus")
	assert.False(t, done)
	assert.Contains(t, out, "hunk context mismatch")
}
