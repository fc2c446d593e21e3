package panel

import (
	"strconv"
	"testing"
)

func TestPadSpeed(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"0", "000"},
		{"5", "005"},
		{"9", "009"},
		{"10", "010"},
		{"42", "042"},
		{"99", "099"},
		{"100", "100"},
		{"250", "250"},
		{"", "00"},
		{"7.5", "007.5"},
		{"abc", "abc"},
		{"NaN", "NaN"},
		{" 8 ", "00 8 "},
		{"0x1A", "00x1A"},
		{"0XFF", "0XFF"},
		{"0b101", "00b101"},
		{"0o17", "00o17"},
		{"0x", "0x"},
		{"0xZZ", "0xZZ"},
		{"-0x5", "-0x5"},
		{"-inf", "-inf"},
		{"inf", "inf"},
		{"nan", "nan"},
		{"Infinity", "Infinity"},
		{"-Infinity", "00-Infinity"},
		{"0x1p3", "0x1p3"},
		{"1_0", "1_0"},
		{"1e1", "01e1"},
		{"-3", "00-3"},
	}
	for _, tc := range cases {
		if got := PadSpeed(tc.in); got != tc.want {
			t.Errorf("PadSpeed(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPadSpeed_LengthIsThreeForPercentRange(t *testing.T) {
	for v := 0; v <= 100; v++ {
		got := PadSpeed(strconv.Itoa(v))
		if len(got) != 3 {
			t.Fatalf("PadSpeed(%d) = %q, want 3 characters", v, got)
		}
	}
}
