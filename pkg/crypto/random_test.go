package crypto

import "testing"

func TestRandomBytesLengthAndUniqueness(t *testing.T) {
	a, err := RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("length = %d, want 32", len(a))
	}
	b, err := RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	if CtEq(a, b) {
		t.Fatal("two independent RandomBytes calls produced identical output")
	}
}

func TestCtEq(t *testing.T) {
	if !CtEq([]byte("abc"), []byte("abc")) {
		t.Fatal("CtEq(abc, abc) = false")
	}
	if CtEq([]byte("abc"), []byte("abd")) {
		t.Fatal("CtEq(abc, abd) = true")
	}
	if CtEq([]byte("abc"), []byte("ab")) {
		t.Fatal("CtEq of different lengths = true")
	}
}
