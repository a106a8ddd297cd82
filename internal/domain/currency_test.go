package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{999.994, "999.99"},
		{1000, "1,000.00"},
		{2500.5, "2,500.50"},
		{123456.789, "123,456.79"},
		{1234567.8, "1,234,567.80"},
		{-1500, "-1,500.00"},
		{-12.3, "-12.30"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatCurrency(tc.in))
	}
}
