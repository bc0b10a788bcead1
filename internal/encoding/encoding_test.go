package encoding

import "testing"

func TestEncode(t *testing.T) {
	act := Encode([]byte("hello, world"))

	if act != "aGVsbG8sIHdvcmxk" {
		t.Errorf("unexpected encoded string: '%s'", act)
	}
}

func TestDecode(t *testing.T) {
	act, err := Decode("aGVsbG8sIHdvcmxk")
	if err != nil {
		t.Fatal(err)
	}

	if string(act) != "hello, world" {
		t.Errorf("unexpected decoded string: '%s'", string(act))
	}
}

func TestSplitCompact(t *testing.T) {
	parts, err := SplitCompact("a.b.c", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 3 || parts[0] != "a" || parts[2] != "c" {
		t.Errorf("unexpected parts: %v", parts)
	}

	if _, err := SplitCompact("a.b", 3); err == nil {
		t.Error("expected error for wrong segment count")
	}

	if _, err := SplitCompact("a.b.c.d.e", 5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConstantTimeEqual(t *testing.T) {
	if !ConstantTimeEqual([]byte("abc"), []byte("abc")) {
		t.Error("expected equal")
	}
	if ConstantTimeEqual([]byte("abc"), []byte("abd")) {
		t.Error("expected not equal")
	}
	if ConstantTimeEqual([]byte("abc"), []byte("ab")) {
		t.Error("expected not equal for differing lengths")
	}
}

func TestZero(t *testing.T) {
	b := []byte("secret")
	Zero(b)
	for _, c := range b {
		if c != 0 {
			t.Fatalf("expected zeroed buffer, got %v", b)
		}
	}
}
