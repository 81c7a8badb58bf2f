package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"12.346", 1235, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1e3", 0, false},
		{"0", 0, false},
		{"0.001", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestAverageOf(t *testing.T) {
	cases := []struct {
		total int64
		count int
		want  int64
	}{
		{0, 0, 0},
		{1000, 0, 0},
		{1000, 4, 250},
		{1000, 3, 333},
		{200, 3, 67},
		{5, 2, 3},
	}
	for _, tc := range cases {
		if got := AverageOf(Money{Cents: tc.total}, tc.count); got.Cents != tc.want {
			t.Fatalf("AverageOf(%d, %d) = %d, want %d", tc.total, tc.count, got.Cents, tc.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Money `json:"a"`
	}{Money{Cents: 35000}})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"a":350.00}` {
		t.Fatalf("marshal: %s", b)
	}

	var v struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":12.5,"b":"0.07"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.A.Cents != 1250 || v.B.Cents != 7 {
		t.Fatalf("unmarshal: %+v", v)
	}
}
