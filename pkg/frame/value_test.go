package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	t.Run("empty input becomes null", func(t *testing.T) {
		assert.True(t, Coerce("", KindInt).IsNull())
		assert.True(t, Coerce("", KindString).IsNull())
	})

	t.Run("int text parses", func(t *testing.T) {
		v := Coerce("42", KindInt)
		assert.Equal(t, KindInt, v.Kind())
		assert.Equal(t, int64(42), v.Int())
	})

	t.Run("decimal text on an int column falls back to float", func(t *testing.T) {
		v := Coerce("42.5", KindInt)
		assert.Equal(t, KindFloat, v.Kind())
		assert.Equal(t, 42.5, v.Float())
	})

	t.Run("unparsable numeric text is kept raw and tagged", func(t *testing.T) {
		v := Coerce("n/a really", KindFloat)
		assert.Equal(t, KindString, v.Kind())
		assert.True(t, v.IsUnparsed())
		assert.Equal(t, "n/a really", v.String())
	})

	t.Run("string column passes text through untagged", func(t *testing.T) {
		v := Coerce("hello", KindString)
		assert.False(t, v.IsUnparsed())
		assert.Equal(t, "hello", v.String())
	})
}

func TestDetect(t *testing.T) {
	assert.Equal(t, KindInt, Detect("7").Kind())
	assert.Equal(t, KindFloat, Detect("7.5").Kind())
	assert.Equal(t, KindString, Detect("seven").Kind())
	assert.True(t, Detect("").IsNull())
}

func TestValueAny(t *testing.T) {
	assert.Nil(t, Null().Any())
	assert.Equal(t, int64(3), Int(3).Any())
	assert.Equal(t, 1.5, Float(1.5).Any())
	assert.Equal(t, "x", String("x").Any())
}

func TestFromAnyRoundTrip(t *testing.T) {
	for _, v := range []Value{Null(), Int(9), Float(2.25), String("row")} {
		assert.Equal(t, v.Any(), FromAny(v.Any()).Any())
	}
	assert.Equal(t, "bytes", FromAny([]byte("bytes")).String())
}

func TestKindDType(t *testing.T) {
	assert.Equal(t, "int64", KindInt.DType())
	assert.Equal(t, "float64", KindFloat.DType())
	assert.Equal(t, "string", KindString.DType())

	assert.Equal(t, KindInt, KindForDType("int64"))
	assert.Equal(t, KindFloat, KindForDType("float32"))
	assert.Equal(t, KindString, KindForDType("object"))
}
