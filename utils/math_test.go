package utils

import "testing"

func TestPercentOf(t *testing.T) {
	cases := []struct {
		part, whole, want int
	}{
		{0, 7, 0},
		{3, 7, 43},
		{7, 7, 100},
		{14, 7, 100}, // overshoot caps at 100
		{5, 0, 0},
		{5, -1, 0},
		{14, 30, 47},
		{1, 24, 4},
	}
	for _, c := range cases {
		if got := PercentOf(c.part, c.whole); got != c.want {
			t.Errorf("PercentOf(%d, %d) = %d, want %d", c.part, c.whole, got, c.want)
		}
	}
}

func TestRoundFloat(t *testing.T) {
	if got := RoundFloat(3.14159, 2); got != 3.14 {
		t.Errorf("RoundFloat(3.14159, 2) = %v", got)
	}
	if got := RoundFloat(2.675, 1); got != 2.7 {
		t.Errorf("RoundFloat(2.675, 1) = %v", got)
	}
}
