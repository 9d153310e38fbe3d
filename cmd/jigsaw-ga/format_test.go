// ABOUTME: Tests for minimal precision formatting
// ABOUTME: Validates precision calculation for distinguishing float64 pairs

package main

import (
	"math"
	"testing"
)

func TestFormatMinimalPrecision(t *testing.T) {
	tests := []struct {
		name string
		prev float64
		curr float64
		want string
	}{
		{name: "identical numbers", prev: 1.5, curr: 1.5, want: "1.50"},
		{name: "identical zero", prev: 0.0, curr: 0.0, want: "0.00"},
		{name: "differ at 1st decimal", prev: 1.1, curr: 1.2, want: "1.20"},
		{name: "differ at 2nd decimal", prev: 1.11, curr: 1.12, want: "1.120"},
		{name: "differ at 5th decimal", prev: 0.123451, curr: 0.123459, want: "0.123459"},
		{name: "differ at 8th decimal", prev: 0.12345678, curr: 0.12345679, want: "0.123456790"},
		{name: "very small difference", prev: 1.0000000001, curr: 1.0000000002, want: "1.0000000002"},
		{name: "negative numbers", prev: -1.123, curr: -1.124, want: "-1.1240"},
		{name: "zero vs small number", prev: 0.0, curr: 0.001, want: "0.0010"},
		{name: "large numbers", prev: 12345.67, curr: 12345.68, want: "12345.680"},
		{name: "NaN", prev: 0.0, curr: math.NaN(), want: "NaN"},
		{name: "infinity", prev: 0.0, curr: math.Inf(1), want: "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMinimalPrecision(tt.prev, tt.curr)
			if got != tt.want {
				t.Errorf("formatMinimalPrecision(%v, %v) = %q, want %q", tt.prev, tt.curr, got, tt.want)
			}
		})
	}
}

func TestFormatMinimalPrecisionSymmetric(t *testing.T) {
	a, b := 0.123, 0.124

	resultAB := formatMinimalPrecision(a, b)
	resultBA := formatMinimalPrecision(b, a)

	countDecimals := func(s string) int {
		for i := len(s) - 1; i >= 0; i-- {
			if s[i] == '.' {
				return len(s) - i - 1
			}
		}
		return 0
	}

	if countDecimals(resultAB) != countDecimals(resultBA) {
		t.Errorf("expected symmetric precision: %q vs %q", resultAB, resultBA)
	}
}
