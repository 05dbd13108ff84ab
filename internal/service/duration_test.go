package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/bikeshare-stats/internal/service"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "0:00:00"},
		{in: 16*time.Minute + 39*time.Second, want: "0:16:39"},
		{in: 10*time.Hour + 5*time.Second + 135549*time.Microsecond, want: "10:00:05.135549"},
		{in: 24 * time.Hour, want: "1 day, 0:00:00"},
		{in: 26*time.Hour + 3*time.Minute + 4*time.Second + 500*time.Millisecond, want: "1 day, 2:03:04.500000"},
		{in: 3*24*time.Hour + time.Second, want: "3 days, 0:00:01"},
		{in: -time.Second, want: "-1 day, 23:59:59"},
		{in: -49 * time.Hour, want: "-3 days, 23:00:00"},
		{in: 1500 * time.Nanosecond, want: "0:00:00.000002"},
		{in: 400 * time.Nanosecond, want: "0:00:00"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, service.FormatDuration(tc.in))
		})
	}
}
