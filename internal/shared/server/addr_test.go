package server

import "testing"

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":4000", "8080": ":8080", ":9000": ":9000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
