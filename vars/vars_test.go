package vars

import "testing"

func TestFirstNonZero(t *testing.T) {
	if n := FirstNonZero(0, 0, 3, 4); n != 3 {
		t.Fatalf("got %v", n)
	}
	if s := FirstNonZero("", ""); s != "" {
		t.Fatalf("got %q", s)
	}
	if s := FirstNonZero("", "flag", "config"); s != "flag" {
		t.Fatalf("got %q", s)
	}
}

func TestDerefOrZero(t *testing.T) {
	if n := DerefOrZero[int](nil); n != 0 {
		t.Fatalf("got %v", n)
	}
	if n := DerefOrZero(PtrTo(42)); n != 42 {
		t.Fatalf("got %v", n)
	}
}

func TestStrToBool(t *testing.T) {
	for _, c := range []struct {
		str      string
		expected bool
	}{
		{"true", true},
		{"Yes", true},
		{"y", true},
		{"false", false},
		{"no", false},
		{" ON ", true},
		{"1", true},
		{"0", false},
		{"off", false},
		{"", false},
		{"whatever", false},
	} {
		if got := StrToBool(c.str); got != c.expected {
			t.Fatalf("%s: got %v", c.str, got)
		}
	}
}
