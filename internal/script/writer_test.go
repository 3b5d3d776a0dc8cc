package script

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/willibrandon/consoledump/core"
)

const (
	cssType   = "'color:#555;font-weight:400'"
	cssValue  = "'color:#608;font-weight:600'"
	cssString = "'color:#900;font-weight:600'"
)

func TestWriterLog(t *testing.T) {
	w := NewWriter()
	w.Log([]core.LogItem{
		core.Item("100", core.StyleValue),
		core.Item("int", core.StyleType),
	})

	assert.Equal(t, "console.log('%c100 %cint',"+cssValue+","+cssType+");", w.String())
}

func TestWriterEscapesTokenText(t *testing.T) {
	w := NewWriter()
	w.Log([]core.LogItem{
		core.Item("'50% <off>'", core.StyleStringValue),
		core.Item("string[11]", core.StyleType),
	})

	assert.Equal(t, `console.log('%c\'50%% \<off\>\' %cstring[11]',`+cssString+","+cssType+");", w.String())
}

func TestWriterWritesLiteralTokensVerbatim(t *testing.T) {
	w := NewWriter()
	w.Log([]core.LogItem{
		core.Item("0", core.StyleValue),
		core.Literal("=>", core.StyleArrow),
		core.Item("a>b", core.StyleType),
	})

	assert.Equal(t, `console.log('%c0 %c=> %ca\>b',`+cssValue+","+cssType+","+cssType+");", w.String())
}

func TestWriterGroups(t *testing.T) {
	w := NewWriter()
	w.Group([]core.LogItem{core.Item("slice[1]", core.StyleType)})
	assert.Equal(t, 1, w.Depth())
	w.Log([]core.LogItem{core.Item("null", core.StyleType)})
	w.GroupEnd()
	assert.Equal(t, 0, w.Depth())

	assert.Equal(t,
		"console.groupCollapsed('%cslice[1]',"+cssType+");"+
			"console.log('%cnull',"+cssType+");"+
			"console.groupEnd();",
		w.String())
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		nonce string
		want  string
	}{
		{"no nonce", "x", "", "<script>x</script>"},
		{"plain nonce", "x", "abc", `<script nonce="abc">x</script>`},
		{"nonce escaped", "x", `a"b`, `<script nonce="a&quot;b">x</script>`},
		{"base64 nonce", "", "ab+c/d=", `<script nonce="ab&#x2B;c&#x2F;d&#x3D;"></script>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.body, tt.nonce))
		})
	}
}
