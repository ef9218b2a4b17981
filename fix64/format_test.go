package fix64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		q    Q
		want string
	}{
		{name: "zero", q: Zero, want: "0"},
		{name: "whole", q: FromInt(3), want: "3"},
		{name: "negative whole", q: FromInt(-42), want: "-42"},
		{name: "half", q: One + Half, want: "1.5"},
		{name: "negative fraction only", q: -(One >> 2), want: "-0.25"},
		{name: "trims trailing zeros", q: FromInt(2) + (One >> 1), want: "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.q.String())
		})
	}
}

func TestStringFixed(t *testing.T) {
	tests := []struct {
		name string
		q    Q
		n    uint
		want string
	}{
		{name: "no decimals", q: One + Half, n: 0, want: "1"},
		{name: "padded", q: One + Half, n: 3, want: "1.500"},
		{name: "negative", q: -(One >> 2), n: 2, want: "-0.25"},
		{name: "truncated not rounded", q: Half, n: 1, want: "0.5"},
		// 1/2^32 = 0.00000000023283064365...
		{name: "epsilon", q: Epsilon, n: 10, want: "0.0000000002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.q.StringFixed(tt.n))
		})
	}
}

func TestDecimalMark(t *testing.T) {
	assert.Equal(t, ".", DecimalMark(message.NewPrinter(language.English)))
	assert.Equal(t, ",", DecimalMark(message.NewPrinter(language.German)))
	assert.Equal(t, ",", DecimalMark(message.NewPrinter(language.Dutch)))
}

func TestSprint(t *testing.T) {
	q := One + Half
	assert.Equal(t, "1.50", q.Sprint(message.NewPrinter(language.English), 2))
	assert.Equal(t, "1,50", q.Sprint(message.NewPrinter(language.German), 2))
	assert.Equal(t, "-0,25", (-(One >> 2)).Sprint(message.NewPrinter(language.Dutch), 2))
}
