package session

import (
	"encoding/json"
	"testing"

	"github.com/roninagent/ronin/internal/agent"
	"github.com/roninagent/ronin/internal/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_CapturesLogStateAndAgent(t *testing.T) {
	ag := &scriptedAgent{identity: agent.Identity{
		Name:        "ronin",
		Model:       "gpt-4o",
		Temperature: 0.2,
		ChatHistory: []agent.Message{{Role: "user", Content: "Task: x"}},
	}}
	dir := t.TempDir()
	s, err := New(Arguments{Path: dir, Environment: "local"}, ag)
	require.NoError(t, err)

	s.SubmitTask("refactor the parser")
	s.State().PageSize = 50
	s.State().Editor["main.go"] = &EditorFile{Offset: 2}

	snap := s.Snapshot()
	assert.Equal(t, dir, snap.Path)
	assert.Equal(t, "local", snap.Environment)
	require.Len(t, snap.EventHistory, 1)
	assert.Equal(t, event.TypeTask, snap.EventHistory[0].Type)
	assert.Equal(t, 50, snap.State.PageSize)
	assert.Equal(t, "ronin", snap.Agent.Name)
	assert.NotEmpty(t, snap.Cwd)
}

func TestRestore_RoundTripPreservesLogAndState(t *testing.T) {
	dir := t.TempDir()
	ag := &scriptedAgent{identity: agent.Identity{Name: "ronin", Model: "gpt-4o"}}
	s, err := New(Arguments{Path: dir, Environment: "local"}, ag)
	require.NoError(t, err)

	s.SubmitTask("task under test")
	s.Log().Append(event.New(event.TypeModelResponse, rawAction("ls"), "ronin"))
	s.State().Editor["f.go"] = &EditorFile{Offset: 1, Content: "page"}

	first := s.Snapshot()

	restoredAgent := &scriptedAgent{}
	restored, err := Restore(first, restoredAgent, nil)
	require.NoError(t, err)

	second := restored.Snapshot()

	// snapshot(restore(snapshot(s))) == snapshot(s) for log and state.
	assert.Equal(t, first.EventHistory, second.EventHistory)
	assert.Equal(t, first.State, second.State)
	assert.Equal(t, first.Agent, second.Agent)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Environment, second.Environment)

	// The restored log re-walks from the head.
	assert.Equal(t, 0, restored.Log().Cursor())
	assert.Equal(t, 2, restored.Log().Len())
}

func TestRestore_ReplaysCwdThroughEnvironment(t *testing.T) {
	env := &fakeEnv{cwd: t.TempDir()}
	snap := Snapshot{
		Path:        env.cwd,
		Environment: "local",
		Cwd:         env.cwd + "/deeper",
	}

	_, err := Restore(snap, &scriptedAgent{}, nil, WithEnvironment(env))
	require.NoError(t, err)
	assert.Equal(t, []string{"cd " + env.cwd + "/deeper"}, env.commands)
}

func TestRestore_MissingFieldsIsRestoreMismatch(t *testing.T) {
	_, err := Restore(Snapshot{}, &scriptedAgent{}, nil)
	require.Error(t, err)
}

func TestSnapshot_JSONSchema(t *testing.T) {
	ag := &scriptedAgent{identity: agent.Identity{Name: "ronin"}}
	s, err := New(Arguments{Path: t.TempDir(), Environment: "local"}, ag)
	require.NoError(t, err)
	s.SubmitTask("task")

	data, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"path", "environment", "event_history", "state", "cwd", "agent"} {
		assert.Contains(t, decoded, key)
	}

	agentBlob, ok := decoded["agent"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"name", "model", "temperature", "chat_history"} {
		assert.Contains(t, agentBlob, key)
	}
}
