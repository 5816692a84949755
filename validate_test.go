package clipview_test

import (
	"testing"

	"github.com/pmazur/clipview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDuration(t *testing.T) {
	t.Parallel()

	t.Run("accepts duration exactly at the minimum", func(t *testing.T) {
		t.Parallel()

		err := clipview.ValidateDuration(10, 10+clipview.MinClipDuration)

		assert.Nil(t, err)
	})

	t.Run("accepts duration exactly at the maximum", func(t *testing.T) {
		t.Parallel()

		err := clipview.ValidateDuration(0, clipview.MaxClipDuration)

		assert.Nil(t, err)
	})

	t.Run("rejects duration just below the minimum", func(t *testing.T) {
		t.Parallel()

		err := clipview.ValidateDuration(10, 10+clipview.MinClipDuration-0.01)

		require.NotNil(t, err)
		assert.Equal(t, clipview.DurationTooShort, err.Reason)
		assert.Contains(t, err.Error(), "minimum of 1s")
	})

	t.Run("rejects duration just above the maximum", func(t *testing.T) {
		t.Parallel()

		err := clipview.ValidateDuration(0, clipview.MaxClipDuration+0.01)

		require.NotNil(t, err)
		assert.Equal(t, clipview.DurationTooLong, err.Reason)
		assert.Contains(t, err.Error(), "maximum of 600s")
	})

	t.Run("rejects end equal to start", func(t *testing.T) {
		t.Parallel()

		err := clipview.ValidateDuration(5, 5)

		require.NotNil(t, err)
		assert.Equal(t, clipview.DurationInverted, err.Reason)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		t.Parallel()

		err := clipview.ValidateDuration(10, 4)

		require.NotNil(t, err)
		assert.Equal(t, clipview.DurationInverted, err.Reason)
	})

	t.Run("is deterministic for identical inputs", func(t *testing.T) {
		t.Parallel()

		first := clipview.ValidateDuration(3, 3.5)
		second := clipview.ValidateDuration(3, 3.5)

		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, *first, *second)
	})
}

func TestClamp(t *testing.T) {
	t.Parallel()

	t.Run("clamps negative values to zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0.0, clipview.Clamp(-3.2, 100))
	})

	t.Run("clamps values above the limit", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 100.0, clipview.Clamp(250, 100))
	})

	t.Run("passes in-range values through exactly", func(t *testing.T) {
		t.Parallel()

		v := 42.123456789
		assert.Equal(t, v, clipview.Clamp(v, 100))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		for _, v := range []float64{-7, 0, 0.001, 59.999, 60, 61, 1e9} {
			once := clipview.Clamp(v, 60)
			twice := clipview.Clamp(once, 60)
			assert.Equal(t, once, twice, "Clamp(%v) not idempotent", v)
		}
	})

	t.Run("always lands in range", func(t *testing.T) {
		t.Parallel()

		for _, v := range []float64{-1e12, -1, 0, 30, 60, 1e12} {
			got := clipview.Clamp(v, 60)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 60.0)
		}
	})
}
