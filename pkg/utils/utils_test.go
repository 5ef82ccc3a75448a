package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 59.18, RoundWithTwoDecimalPlace(59.175344))
	assert.Equal(t, 412.5, RoundWithTwoDecimalPlace(412.5))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, -1.23, RoundWithTwoDecimalPlace(-1.234))
}

func TestParseDate(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)

	date, err := ParseDate("2024-03-10", brt)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, brt), date)

	date, err = ParseDate("", brt)
	require.NoError(t, err)
	assert.True(t, date.IsZero())

	_, err = ParseDate("10/03/2024", brt)
	assert.Error(t, err)
}

func TestEndOfDay(t *testing.T) {
	end := EndOfDay(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC), end)
}

func TestGenerateRunID(t *testing.T) {
	id, err := GenerateRunID()
	require.NoError(t, err)

	assert.Len(t, id, 8)
	assert.Regexp(t, "^[A-Za-z0-9]+$", id)
}
