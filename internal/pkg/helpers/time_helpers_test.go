package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2012-04-01 ")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2012, time.April, 1, 0, 0, 0, 0, time.UTC), *d)

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("01/04/2012")
	assert.Error(t, err)
}
