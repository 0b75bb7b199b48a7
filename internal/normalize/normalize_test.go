package normalize

import "testing"

func TestText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Tommy V ", "tommy v"},
		{"BARBELL", "barbell"},
		{"", ""},
		{"\tjane@Example.com\n", "jane@example.com"},
	}
	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Jane@example.com ", " jane@EXAMPLE.com") {
		t.Fatal("expected emails to be equal after normalization")
	}
	if Equal("rope", "ropes") {
		t.Fatal("different values must not be equal")
	}
}
