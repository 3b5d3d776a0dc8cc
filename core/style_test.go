package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleClassCSS(t *testing.T) {
	tests := []struct {
		style StyleClass
		css   string
	}{
		{StyleType, "color:#555;font-weight:400"},
		{StyleValue, "color:#608;font-weight:600"},
		{StyleStringValue, "color:#900;font-weight:600"},
		{StyleArrow, "color:#555;font-weight:400"},
		{StyleName, "color:#00b;font-weight:400"},
		{StyleNote, "color:#555;font-weight:400;font-style:italic"},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			assert.Equal(t, tt.css, tt.style.CSS())
		})
	}
}

func TestStyleClassCSSUnknown(t *testing.T) {
	assert.Equal(t, StyleType.CSS(), StyleClass(42).CSS())
	assert.Equal(t, StyleType.CSS(), StyleClass(-1).CSS())
	assert.Equal(t, "Unknown", StyleClass(42).String())
}

func TestVisibilityString(t *testing.T) {
	assert.Equal(t, "", VisibilityNone.String())
	assert.Equal(t, "public", VisibilityPublic.String())
	assert.Equal(t, "protected", VisibilityProtected.String())
	assert.Equal(t, "private", VisibilityPrivate.String())
}

func TestDescriptionIsEmpty(t *testing.T) {
	assert.True(t, Description{TypeName: "x.Empty"}.IsEmpty())
	assert.False(t, Description{Members: []Member{{Name: "A"}}}.IsEmpty())
	assert.False(t, Description{Parents: []any{struct{}{}}}.IsEmpty())
}

func TestLiteral(t *testing.T) {
	assert.False(t, Item("=>", StyleArrow).Literal)
	assert.Equal(t, LogItem{Text: "=>", Style: StyleArrow, Literal: true}, Literal("=>", StyleArrow))
}
