package predict_test

import (
	"math"
	"strings"
	"testing"

	"github.com/aretw0/dwellkeys/pkg/predict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePrefix_SizeLimit(t *testing.T) {
	limit := predict.DefaultMaxPrefixSize

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := predict.SanitizePrefix(strings.Repeat("a", tt.size))
			if tt.wantErr {
				assert.ErrorIs(t, err, predict.ErrPrefixTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizePrefix_EnvOverride(t *testing.T) {
	t.Setenv(predict.EnvMaxPrefixSize, "4")

	_, err := predict.SanitizePrefix("casas")
	assert.ErrorIs(t, err, predict.ErrPrefixTooLarge)

	got, err := predict.SanitizePrefix("casa")
	require.NoError(t, err)
	assert.Equal(t, "casa", got)
}

func TestSanitizePrefix_Content(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain", "ca", "ca"},
		{"Accents", "pasó", "pasó"},
		{"ANSI escape", "\x1b[31mca", "[31mca"},
		{"Null and bell", "c\x00a\a", "ca"},
		{"Newline", "ca\n", "ca"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := predict.SanitizePrefix(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := predict.SanitizePrefix("ca\xff")
	assert.ErrorIs(t, err, predict.ErrInvalidUTF8)
}

func TestLimitFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    int
		wantErr bool
	}{
		{name: "Zero", input: 0, want: 0},
		{name: "Default", input: 5, want: 5},
		{name: "Max", input: predict.MaxLimit, want: predict.MaxLimit},
		{name: "Over max", input: predict.MaxLimit + 1, wantErr: true},
		{name: "Huge", input: 1e300, wantErr: true},
		{name: "Negative", input: -1, wantErr: true},
		{name: "Fraction", input: 2.5, wantErr: true},
		{name: "NaN", input: math.NaN(), wantErr: true},
		{name: "Infinity", input: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := predict.LimitFromFloat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, predict.ErrLimitOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckLimit(t *testing.T) {
	_, err := predict.CheckLimit(predict.MaxLimit + 1)
	assert.ErrorIs(t, err, predict.ErrLimitOutOfRange)

	_, err = predict.CheckLimit(-3)
	assert.ErrorIs(t, err, predict.ErrLimitOutOfRange)

	n, err := predict.CheckLimit(7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
