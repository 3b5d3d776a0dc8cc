package selflog_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/consoledump/selflog"
)

func TestSelfLog(t *testing.T) {
	selflog.Disable()
	defer selflog.Disable()

	t.Run("disabled by default", func(t *testing.T) {
		assert.False(t, selflog.IsEnabled())
		selflog.Printf("[test] should not appear")
	})

	t.Run("enable with writer", func(t *testing.T) {
		var buf bytes.Buffer
		selflog.Enable(&buf)
		defer selflog.Disable()

		selflog.Printf("[test] error: %s", "test error")

		output := buf.String()
		assert.Contains(t, output, "[test] error: test error")
		assert.Contains(t, output, time.Now().UTC().Format("2006-01-02"))
	})

	t.Run("enable with func", func(t *testing.T) {
		var messages []string
		selflog.EnableFunc(func(msg string) {
			messages = append(messages, msg)
		})
		defer selflog.Disable()

		selflog.Printf("[describe] string conversion panicked: %v", "boom")

		require.Len(t, messages, 1)
		assert.Contains(t, messages[0], "[describe] string conversion panicked: boom")
	})

	t.Run("disable stops output", func(t *testing.T) {
		var buf bytes.Buffer
		selflog.Enable(&buf)
		selflog.Printf("[test] first")
		selflog.Disable()
		selflog.Printf("[test] second")

		assert.NotContains(t, buf.String(), "second")
	})

	t.Run("nil writer ignored", func(t *testing.T) {
		selflog.Enable(nil)
		assert.False(t, selflog.IsEnabled())
		selflog.Printf("[test] should not crash")
	})

	t.Run("nil func ignored", func(t *testing.T) {
		selflog.EnableFunc(nil)
		assert.False(t, selflog.IsEnabled())
		selflog.Printf("[test] should not crash")
	})
}

func TestSyncWriter(t *testing.T) {
	var unsafeBuf bytes.Buffer
	safeBuf := selflog.Sync(&unsafeBuf)

	selflog.Enable(safeBuf)
	defer selflog.Disable()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			selflog.Printf("[goroutine-%d] test message", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(unsafeBuf.String()), "\n")
	assert.Len(t, lines, 100)
}

func TestRealWorldScenarios(t *testing.T) {
	t.Run("describer panic", func(t *testing.T) {
		var buf bytes.Buffer
		selflog.Enable(&buf)
		defer selflog.Disable()

		selflog.Printf("[describe] ConsoleDescription panicked: %v (type=%T)", "nil map write", struct{}{})

		assert.Contains(t, buf.String(), "nil map write")
		assert.Contains(t, buf.String(), "type=struct {}")
	})

	t.Run("options decode", func(t *testing.T) {
		var buf bytes.Buffer
		selflog.Enable(&buf)
		defer selflog.Disable()

		selflog.Printf("[dump] ignoring unknown option %q", "script_nonce")

		assert.Contains(t, buf.String(), `ignoring unknown option "script_nonce"`)
	})
}

func TestEnableFromEnv(t *testing.T) {
	selflog.Disable()
	defer selflog.Disable()

	t.Run("empty leaves state unchanged", func(t *testing.T) {
		require.NoError(t, selflog.EnableFromEnv(""))
		assert.False(t, selflog.IsEnabled())
	})

	t.Run("file destination appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "selflog.txt")
		require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0o644))

		require.NoError(t, selflog.EnableFromEnv(path))
		defer selflog.Disable()
		assert.True(t, selflog.IsEnabled())

		selflog.Printf("[render] panic while rendering: %v", "boom")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "existing\n"))
		assert.Contains(t, string(data), "[render] panic while rendering: boom")
	})

	t.Run("unopenable path is an error", func(t *testing.T) {
		selflog.Disable()
		err := selflog.EnableFromEnv(filepath.Join(t.TempDir(), "missing", "selflog.txt"))
		assert.Error(t, err)
		assert.False(t, selflog.IsEnabled())
	})

	t.Run("stderr", func(t *testing.T) {
		require.NoError(t, selflog.EnableFromEnv("stderr"))
		assert.True(t, selflog.IsEnabled())
		selflog.Disable()
	})
}

func TestEnableFuncReplacesWriter(t *testing.T) {
	var buf bytes.Buffer
	selflog.Enable(&buf)
	defer selflog.Disable()

	var got []string
	selflog.EnableFunc(func(msg string) { got = append(got, msg) })
	selflog.Printf("[configuration] ignoring unknown keys: %v", []string{"Colour"})

	assert.Empty(t, buf.String())
	require.Len(t, got, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z \[configuration\] ignoring unknown keys: \[Colour\]$`, got[0])
}

func BenchmarkSelfLog(b *testing.B) {
	b.Run("disabled", func(b *testing.B) {
		selflog.Disable()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			selflog.Printf("[bench] test message %d", i)
		}
	})

	b.Run("disabled with guard", func(b *testing.B) {
		selflog.Disable()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if selflog.IsEnabled() {
				selflog.Printf("[bench] test message %d", i)
			}
		}
	})

	b.Run("enabled to discard", func(b *testing.B) {
		selflog.Enable(io.Discard)
		defer selflog.Disable()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			selflog.Printf("[bench] test message %d", i)
		}
	})
}

func TestRace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping race test in short mode")
	}

	var buf bytes.Buffer
	syncWriter := selflog.Sync(&buf)
	selflog.Enable(syncWriter)
	defer selflog.Disable()

	done := make(chan bool)

	go func() {
		for i := 0; i < 100; i++ {
			selflog.Enable(syncWriter)
			time.Sleep(time.Microsecond)
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			selflog.Disable()
			time.Sleep(time.Microsecond)
		}
		done <- true
	}()

	for i := 0; i < 10; i++ {
		go func(n int) {
			for j := 0; j < 100; j++ {
				selflog.Printf("[race-%d] message %d", n, j)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 12; i++ {
		<-done
	}
}
