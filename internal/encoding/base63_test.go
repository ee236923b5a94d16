package encoding

import "testing"

func TestBase63RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 62, 63, 12345, 1 << 40, ^uint64(0)}
	for _, v := range cases {
		enc := Base63Encode(v)
		dec, err := Base63Decode(enc)
		if err != nil {
			t.Fatalf("decode(%q) error: %v", enc, err)
		}
		if dec != v {
			t.Fatalf("round trip mismatch: %d -> %q -> %d", v, enc, dec)
		}
	}
}

func TestBase63DecodeErrors(t *testing.T) {
	if _, err := Base63Decode(""); err != ErrEmptyString {
		t.Fatalf("expected ErrEmptyString, got %v", err)
	}
	if _, err := Base63Decode("!!"); err != ErrInvalidChar {
		t.Fatalf("expected ErrInvalidChar, got %v", err)
	}
}

func TestBase63IsValid(t *testing.T) {
	if !Base63IsValid("AbC123_") {
		t.Fatal("expected valid")
	}
	if Base63IsValid("") || Base63IsValid("a!b") {
		t.Fatal("expected invalid")
	}
}
