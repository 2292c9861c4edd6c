package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	codeSome  Code = "SOME_CODE"
	codeOther Code = "OTHER_CODE"
)

func TestNew(t *testing.T) {
	err := New("MyError", "Some error occurred", CodeNone)

	assert.Equal(t, "Some error occurred", err.Error())
	assert.Equal(t, "Some error occurred", err.Message())
	assert.Equal(t, "MyError", err.Name())
	assert.Equal(t, CodeNone, err.Code())
	assert.Nil(t, err.Unwrap())
	assert.Empty(t, err.Attrs())
}

func TestNew_WithCode(t *testing.T) {
	err := New("MyError", "Some error occurred", codeSome)
	assert.Equal(t, codeSome, err.Code())
}

func TestWrap_PlainError(t *testing.T) {
	cause := errors.New("Some general error occurred")
	err := Wrap("MyError", cause, CodeNone)

	assert.Equal(t, "Some general error occurred", err.Error())
	assert.Equal(t, "MyError", err.Name())
	assert.Equal(t, CodeNone, err.Code())
	assert.ErrorIs(t, err, cause)
}

func TestWrap_CopiesAttributes(t *testing.T) {
	cause := New("Inner", "inner failure", codeOther).WithAttr("foo", "bar")
	err := Wrap("MyError", fmt.Errorf("context: %w", cause), codeSome)

	v, ok := err.Attr("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", v)
	assert.Equal(t, "context: inner failure", err.Error())
	assert.Equal(t, codeSome, err.Code(), "code must come from the caller, not the cause")

	// attributes are copied, not shared
	err.WithAttr("foo", "changed")
	v, _ = cause.Attr("foo")
	assert.Equal(t, "bar", v)
}

func TestWrap_Nil(t *testing.T) {
	err := Wrap("MyError", nil, codeSome)
	assert.Equal(t, "", err.Error())
	assert.Equal(t, codeSome, err.Code())
}

func TestAttrs_ReturnsCopy(t *testing.T) {
	err := New("MyError", "x", CodeNone).WithAttr("a", 1)
	attrs := err.Attrs()
	attrs["a"] = 2

	v, _ := err.Attr("a")
	assert.Equal(t, 1, v)
}

func TestIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("MyError", "boom", codeSome))

	assert.ErrorIs(t, err, New("", "", codeSome))
	assert.NotErrorIs(t, err, New("", "", codeOther))
	assert.NotErrorIs(t, err, New("", "", CodeNone))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: CodeNone},
		{name: "plain error", err: errors.New("x"), want: CodeNone},
		{name: "direct", err: New("E", "x", codeSome), want: codeSome},
		{name: "wrapped", err: fmt.Errorf("a: %w", New("E", "x", codeSome)), want: codeSome},
		{name: "outer code wins", err: Wrap("E", New("E", "x", codeOther), codeSome), want: codeSome},
		{name: "skips empty code", err: Wrap("E", New("E", "x", codeOther), CodeNone), want: codeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestHasCode(t *testing.T) {
	err := Wrap("Outer", New("Inner", "x", codeOther), codeSome)

	assert.True(t, HasCode(err, codeSome))
	assert.True(t, HasCode(err, codeOther))
	assert.False(t, HasCode(err, "MISSING"))
	assert.False(t, HasCode(err, CodeNone))
}
