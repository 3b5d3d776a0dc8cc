package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/consoledump"
	"github.com/willibrandon/consoledump/internal/input"
	"github.com/willibrandon/consoledump/selflog"
)

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CONSOLEDUMP_SCRIPT_NONCE", "")
	t.Setenv("CONSOLEDUMP_THEME", "")
	t.Setenv("CONSOLEDUMP_DEBUG", "")

	var out, errw bytes.Buffer
	c := New(strings.NewReader(stdin), &out, &errw, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errw)

	err := root.ExecuteContext(context.Background())
	return out.String(), errw.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScriptMatchesRender(t *testing.T) {
	path := writeFile(t, "data.json", `{"Foo":"Bar","list":[1,true,null]}`)

	out, _, err := execute(t, "", "script", path, "--label", "data")
	require.NoError(t, err)

	value, err := input.DecodeFile(path, input.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, consoledump.Render(value, "data", consoledump.Options{})+"\n", out)
}

func TestScriptFromStdin(t *testing.T) {
	out, _, err := execute(t, "b = 1\na = 2\n", "script", "--format", "toml", "--nonce", "n1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<script nonce="n1">`), out)
	assert.Less(t, strings.Index(out, `\'b\'`), strings.Index(out, `\'a\'`))
}

func TestScriptUsesConfiguredNonce(t *testing.T) {
	config := writeFile(t, "consoledump.yaml", "ConsoleDump:\n  ScriptNonce: cfg\n")

	out, _, err := execute(t, "1", "--config", config, "script")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<script nonce="cfg">`), out)
}

func TestPreview(t *testing.T) {
	out, _, err := execute(t, `{"a": [1, "x"]}`, "preview", "--format", "json", "--color", "never")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"▸ map[1]",
		"  ▸ 'a' => slice[2]",
		"      0 => 1 int",
		"      1 => 'x' string[1]",
		"",
	}, "\n"), out)
}

func TestPreviewRejectsBadColor(t *testing.T) {
	_, _, err := execute(t, "1", "preview", "--color", "sometimes")
	assert.ErrorContains(t, err, "invalid --color")
}

func TestUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "1", "script", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestMissingConfig(t *testing.T) {
	_, _, err := execute(t, "1", "--config", filepath.Join(t.TempDir(), "nope.json"), "script")
	assert.ErrorContains(t, err, "load config")
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}

func TestVerboseForwardsSelflog(t *testing.T) {
	defer selflog.Disable()

	var errw bytes.Buffer
	c := New(strings.NewReader(""), io.Discard, &errw, log.InfoLevel)
	c.SetLogLevel(LogDebug)
	require.True(t, selflog.IsEnabled())

	selflog.Printf("[describe] string conversion panicked: %v", "boom")

	assert.Contains(t, errw.String(), "selflog")
	assert.Contains(t, errw.String(), "[describe] string conversion panicked: boom")
}
