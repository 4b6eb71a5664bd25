package odml_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/g-node/odml-go/pkg/errors"
	"github.com/g-node/odml-go/pkg/odml"
)

func TestNewValue(t *testing.T) {
	t.Run("nil content is refused", func(t *testing.T) {
		v, err := odml.NewValue(nil)
		require.Error(t, err)
		assert.Nil(t, v)
		assert.ErrorIs(t, err, pkgerrors.ErrNilContent)
	})

	t.Run("type is inferred from content", func(t *testing.T) {
		tests := []struct {
			content any
			want    odml.Type
		}{
			{"some text", odml.TypeText},
			{42, odml.TypeInt},
			{3.14, odml.TypeFloat},
			{true, odml.TypeBoolean},
			{time.Now(), odml.TypeDatetime},
			{[]byte{0x1}, odml.TypeBinary},
		}
		for _, tt := range tests {
			v, err := odml.NewValue(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Type())
		}
	})

	t.Run("declared type wins over inference", func(t *testing.T) {
		v, err := odml.NewValue("Smith, John", odml.WithType(odml.TypePerson))
		require.NoError(t, err)
		assert.Equal(t, odml.TypePerson, v.Type())
	})

	t.Run("options populate side fields", func(t *testing.T) {
		v, err := odml.NewValue(5.3,
			odml.WithUnit("mV"),
			odml.WithUncertainty(0.2),
			odml.WithDefinition("peak amplitude"),
			odml.WithReference("trial-7"))
		require.NoError(t, err)
		assert.Equal(t, "mV", v.Unit())
		assert.Equal(t, 0.2, v.Uncertainty())
		assert.Equal(t, "peak amplitude", v.Definition())
		assert.Equal(t, "trial-7", v.Reference())
	})
}

func TestValueIsEmpty(t *testing.T) {
	v, err := odml.NewValue("   ")
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())

	require.True(t, v.SetContent("x"))
	assert.False(t, v.IsEmpty())

	assert.False(t, v.SetContent(nil), "nil content must be refused")
	assert.Equal(t, "x", v.Content())
}

func TestValueContentEquals(t *testing.T) {
	v, err := odml.NewValue("alpha")
	require.NoError(t, err)
	assert.True(t, v.ContentEquals("alpha"))
	assert.False(t, v.ContentEquals("Alpha"), "content equality is case-sensitive")
	assert.False(t, v.ContentEquals(nil))

	n, err := odml.NewValue(42)
	require.NoError(t, err)
	assert.True(t, n.ContentEquals(42))
	assert.False(t, n.ContentEquals(int64(42)), "content equality does not cross types")
}

func TestValueConversions(t *testing.T) {
	t.Run("float from number and text", func(t *testing.T) {
		v, err := odml.NewValue(2.5)
		require.NoError(t, err)
		assert.Equal(t, 2.5, v.Float())

		v, err = odml.NewValue(" 2.5 ")
		require.NoError(t, err)
		assert.Equal(t, 2.5, v.Float())
	})

	t.Run("float conversion failure yields NaN", func(t *testing.T) {
		v, err := odml.NewValue("not a number")
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v.Float()))
	})

	t.Run("int", func(t *testing.T) {
		v, err := odml.NewValue("17")
		require.NoError(t, err)
		i, ok := v.Int()
		require.True(t, ok)
		assert.Equal(t, int64(17), i)

		v, err = odml.NewValue("x")
		require.NoError(t, err)
		_, ok = v.Int()
		assert.False(t, ok)
	})

	t.Run("date", func(t *testing.T) {
		v, err := odml.NewValue("2009-06-02")
		require.NoError(t, err)
		d, ok := v.Date()
		require.True(t, ok)
		assert.Equal(t, 2009, d.Year())
		assert.Equal(t, time.June, d.Month())
		assert.Equal(t, 2, d.Day())
	})

	t.Run("date keeps the calendar day of the zone", func(t *testing.T) {
		// Shortly after midnight in a zone west of UTC; the UTC instant
		// falls on the same day, so day-truncating the instant against
		// the epoch would report June 1 instead.
		loc := time.FixedZone("UTC-5", -5*60*60)
		v, err := odml.NewValue(time.Date(2009, time.June, 2, 1, 30, 0, 0, loc))
		require.NoError(t, err)

		d, ok := v.Date()
		require.True(t, ok)
		assert.Equal(t, 2009, d.Year())
		assert.Equal(t, time.June, d.Month())
		assert.Equal(t, 2, d.Day())
		assert.Zero(t, d.Hour())
	})

	t.Run("time", func(t *testing.T) {
		v, err := odml.NewValue("12:30:05")
		require.NoError(t, err)
		ts, ok := v.Time()
		require.True(t, ok)
		assert.Equal(t, 12, ts.Hour())
		assert.Equal(t, 30, ts.Minute())
		assert.Equal(t, 5, ts.Second())
	})

	t.Run("time conversion failure", func(t *testing.T) {
		v, err := odml.NewValue("yesterday")
		require.NoError(t, err)
		_, ok := v.Time()
		assert.False(t, ok)
	})
}

func TestValueCopy(t *testing.T) {
	v, err := odml.NewValue([]byte{1, 2, 3}, odml.WithUnit("bit"))
	require.NoError(t, err)

	c := v.Copy()
	require.NotSame(t, v, c)
	assert.Nil(t, c.Property(), "copies are detached")
	assert.Equal(t, "bit", c.Unit())

	// Binary payloads are deep-copied.
	raw := v.Content().([]byte)
	raw[0] = 9
	assert.Equal(t, []byte{9, 2, 3}, v.Content())
	assert.Equal(t, []byte{1, 2, 3}, c.Content())
}
