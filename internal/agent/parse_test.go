package agent

import (
	"errors"
	"testing"

	roninErrors "github.com/roninagent/ronin/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	raw := "<THOUGHT>\nneed the file list\n</THOUGHT>\n<ACTION>\nls -la\n</ACTION>"

	thought, action, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "need the file list", thought)
	assert.Equal(t, "ls -la", action)
}

func TestParseResponse_ThoughtOptional(t *testing.T) {
	_, action, err := ParseResponse("<ACTION>submit</ACTION>")
	require.NoError(t, err)
	assert.Equal(t, "submit", action)
}

func TestParseResponse_MissingActionFails(t *testing.T) {
	_, _, err := ParseResponse("<THOUGHT>hmm</THOUGHT>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, roninErrors.ErrParse))
}

func TestParseAction_QuotedArguments(t *testing.T) {
	fn, args, err := ParseAction(`search_dir "two words" src`)
	require.NoError(t, err)
	assert.Equal(t, "search_dir", fn)
	assert.Equal(t, []string{"two words", "src"}, args)
}

func TestParseAction_MalformedQuotingIsParseFailure(t *testing.T) {
	_, _, err := ParseAction(`grep "unterminated`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, roninErrors.ErrParse))
}

func TestParseAction_EmptyActionIsParseFailure(t *testing.T) {
	_, _, err := ParseAction("   \n  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, roninErrors.ErrParse))
}

func TestParseAction_EditFileKeepsPayloadUntokenized(t *testing.T) {
	fn, args, err := ParseAction("edit_file\n--- a/main.go\n+++ b/main.go\n@@ -1 +1 @@\n-old\n+new")
	require.NoError(t, err)
	assert.Equal(t, "edit_file", fn)
	assert.Empty(t, args)
}
