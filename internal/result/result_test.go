package result

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsFailure(t *testing.T) {
	t.Parallel()

	var r Result[int]
	assert.False(t, r.IsOK())
	assert.Equal(t, "no result", r.Reason())
	require.Error(t, r.Err())
}

func TestOkAndErr(t *testing.T) {
	t.Parallel()

	ok := Ok([]string{"a"})
	v, present := ok.Value()
	assert.True(t, present)
	assert.Equal(t, []string{"a"}, v)
	assert.Empty(t, ok.Reason())
	assert.NoError(t, ok.Err())

	failed := Err[int]("HTTP 503")
	assert.False(t, failed.IsOK())
	assert.Equal(t, 7, failed.ValueOr(7))
	_, err := failed.Unwrap()
	assert.EqualError(t, err, "HTTP 503")

	assert.Equal(t, "no result", Err[int]("").Reason())
}

func TestThen(t *testing.T) {
	t.Parallel()

	parse := func(s string) Result[int] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Err[int]("not a number")
		}
		return Ok(n)
	}

	assert.Equal(t, 42, Then(Ok("42"), parse).ValueOr(0))
	assert.Equal(t, "not a number", Then(Ok("x"), parse).Reason())
	assert.Equal(t, "down", Then(Err[string]("down"), parse).Reason())
}
