package consoledump

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/willibrandon/consoledump/core"
)

const (
	cssType   = "color:#555;font-weight:400"
	cssValue  = "color:#608;font-weight:600"
	cssString = "color:#900;font-weight:600"
	cssArrow  = "color:#555;font-weight:400"
	cssName   = "color:#00b;font-weight:400"
	cssNote   = "color:#555;font-weight:400;font-style:italic"
)

// stmt builds a single console statement from its format string and styles.
func stmt(fn, format string, css ...string) string {
	var b strings.Builder
	b.WriteString("console." + fn + "('" + format + "'")
	for _, c := range css {
		b.WriteString(",'" + c + "'")
	}
	b.WriteString(");")
	return b.String()
}

func scriptOf(statements ...string) string {
	return "<script>" + strings.Join(statements, "") + "</script>"
}

const groupEnd = "console.groupEnd();"

func TestRenderScalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"null", nil, scriptOf(stmt("log", "%cnull", cssType))},
		{"false", false, scriptOf(stmt("log", "%cfalse %cbool", cssValue, cssType))},
		{"true", true, scriptOf(stmt("log", "%ctrue %cbool", cssValue, cssType))},
		{"int", 100, scriptOf(stmt("log", "%c100 %cint", cssValue, cssType))},
		{"float", -0.5, scriptOf(stmt("log", "%c-0.5 %cfloat64", cssValue, cssType))},
		{"string", "Foo Bar Baz", scriptOf(stmt("log", `%c\'Foo Bar Baz\' %cstring[11]`, cssString, cssType))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.value, "", Options{}))
		})
	}
}

func TestRenderEscapedCharacters(t *testing.T) {
	got := Render("<p> 'Foo' \"Bar\" \\ New\r\nLine %c", "", Options{})

	want := scriptOf(stmt("log", `%c\'\<p\> \'Foo\' "Bar" \\ New\r\nLine %%c\' %cstring[30]`, cssString, cssType))
	assert.Equal(t, want, got)
}

func TestRenderCannotCloseScriptElement(t *testing.T) {
	got := Render([]string{"</script><script>alert(1)</script>"}, "</script>", Options{})

	assert.Equal(t, 1, strings.Count(got, "</script>"))
	assert.True(t, strings.HasSuffix(got, "</script>"))
}

func TestRenderLabel(t *testing.T) {
	assert.Equal(t,
		scriptOf(stmt("log", "%cLabel %c100 %cint", cssName, cssValue, cssType)),
		Render(100, "Label", Options{}))

	assert.Equal(t,
		scriptOf(
			stmt("groupCollapsed", "%citems %cslice[1]", cssName, cssType),
			stmt("log", "%c0 %c=> %ctrue %cbool", cssValue, cssArrow, cssValue, cssType),
			groupEnd,
		),
		Render([]bool{true}, "items", Options{}))
}

func TestRenderNonce(t *testing.T) {
	assert.Equal(t,
		`<script nonce="Foo">`+stmt("log", "%cnull", cssType)+"</script>",
		Render(nil, "", Options{ScriptNonce: "Foo"}))

	assert.Equal(t,
		`<script nonce="a&quot;&gt;b">`+stmt("log", "%cnull", cssType)+"</script>",
		Render(nil, "", Options{ScriptNonce: `a">b`}))
}

func TestRenderOrderedMap(t *testing.T) {
	inner := orderedmap.New[any, any]()
	inner.Set(0, 2)
	inner.Set("Baz", false)

	outer := orderedmap.New[any, any]()
	outer.Set("Foo", "Bar")
	outer.Set(1, Ordered(inner))

	want := scriptOf(
		stmt("groupCollapsed", "%cmap[2]", cssType),
		stmt("log", `%c\'Foo\' %c=> %c\'Bar\' %cstring[3]`, cssString, cssArrow, cssString, cssType),
		stmt("groupCollapsed", "%c1 %c=> %cmap[2]", cssValue, cssArrow, cssType),
		stmt("log", "%c0 %c=> %c2 %cint", cssValue, cssArrow, cssValue, cssType),
		stmt("log", `%c\'Baz\' %c=> %cfalse %cbool`, cssString, cssArrow, cssValue, cssType),
		groupEnd,
		groupEnd,
	)
	assert.Equal(t, want, Render(Ordered(outer), "", Options{}))
}

func TestRenderOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	got := Render(Ordered(m), "", Options{})

	c, a, b := strings.Index(got, `\'c\'`), strings.Index(got, `\'a\'`), strings.Index(got, `\'b\'`)
	assert.True(t, c < a && a < b, got)
}

func TestRenderOrderedMapCycle(t *testing.T) {
	m := orderedmap.New[string, any]()
	m.Set("self", Ordered(m))

	want := scriptOf(
		stmt("groupCollapsed", "%cmap[1]", cssType),
		stmt("log", `%c\'self\' %c=> %cmap[1] %crecursion`, cssString, cssArrow, cssType, cssNote),
		groupEnd,
	)
	assert.Equal(t, want, Render(Ordered(m), "", Options{}))
}

func TestRenderNilOrderedMap(t *testing.T) {
	assert.Equal(t,
		scriptOf(stmt("log", "%cnull", cssType)),
		Render(Ordered[string, int](nil), "", Options{}))
}

type account struct {
	Owner   string
	balance int
}

type savings struct {
	account
	Rate float64
}

func TestRenderStructWithParentAndStatics(t *testing.T) {
	RegisterStatics[account](func() []core.Member {
		return []core.Member{{Name: "open", Visibility: core.VisibilityPrivate, Value: 2}}
	})
	t.Cleanup(func() { RegisterStatics[account](nil) })

	const pkg = "github.com/willibrandon/consoledump."
	want := scriptOf(
		stmt("groupCollapsed", "%c"+pkg+"savings", cssType),
		stmt("groupCollapsed", "%cparent %c"+pkg+"account", cssNote, cssType),
		stmt("log", `%cpublic %cOwner %c\'ann\' %cstring[3]`, cssNote, cssName, cssString, cssType),
		stmt("log", "%cprivate %cbalance %c10 %cint", cssNote, cssName, cssValue, cssType),
		stmt("groupCollapsed", "%cstatic", cssNote),
		stmt("log", "%cprivate %copen %c2 %cint", cssNote, cssName, cssValue, cssType),
		groupEnd,
		groupEnd,
		stmt("log", "%cpublic %cRate %c0.5 %cfloat64", cssNote, cssName, cssValue, cssType),
		groupEnd,
	)
	assert.Equal(t, want, Render(savings{account: account{Owner: "ann", balance: 10}, Rate: 0.5}, "", Options{}))
}

func TestRenderTemporal(t *testing.T) {
	got := Render(time.Date(2000, 1, 2, 3, 4, 5, 0, time.FixedZone("", 2*60*60)), "", Options{})
	assert.Equal(t,
		scriptOf(stmt("log", `%c\'2000-01-02 03:04:05 +0200\' %ctime.Time`, cssString, cssType)),
		got)
}

func TestRenderIsBalanced(t *testing.T) {
	values := []any{
		nil,
		map[string]any{"a": []any{1, "x", map[int]bool{1: true}}},
		savings{},
		[][]int{{}, {1}, {1, 2}},
	}

	for _, v := range values {
		got := Render(v, "", Options{})
		assert.Equal(t,
			strings.Count(got, "console.groupCollapsed("),
			strings.Count(got, "console.groupEnd();"),
			got)
	}
}

func TestRenderMapWithNaNKey(t *testing.T) {
	got := Render(map[float64]string{math.NaN(): "a", 1: "b"}, "", Options{})

	assert.Equal(t, 2, strings.Count(got, "console.log("), got)
	assert.Contains(t, got, `%cNaN %c=> %c\'a\' %cstring[1]`)
	assert.Contains(t, got, `%c1 %c=> %c\'b\' %cstring[1]`)
}
