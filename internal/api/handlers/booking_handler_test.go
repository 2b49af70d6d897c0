package handlers

import (
	"net/http"
	"testing"
	"time"

	"bajaj-rental-api-server/internal/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForMapsKinds(t *testing.T) {
	cases := []struct {
		kind booking.Kind
		want int
	}{
		{booking.KindInvalidInput, http.StatusBadRequest},
		{booking.KindNotFound, http.StatusNotFound},
		{booking.KindConflict, http.StatusConflict},
		{booking.KindForbidden, http.StatusForbidden},
		{booking.KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(booking.E(tc.kind, "boom")), tc.kind.String())
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local), got)

	got, err = parseDate("2024-01-02T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), got.UTC())

	_, err = parseDate("02/01/2024")
	assert.Error(t, err)
}
