package proto

import "testing"

func TestKeyPayload(t *testing.T) {
	code, press, r, ok := DecodeKeyPayload(KeyPayload(5, true, 'é'))
	if !ok || code != 5 || !press || r != 'é' {
		t.Fatalf("decode = (%d, %v, %q, %v)", code, press, r, ok)
	}
	if _, _, _, ok := DecodeKeyPayload([]byte{1, 2}); ok {
		t.Fatal("short payload decoded")
	}
}

func TestPointerPayloadNegative(t *testing.T) {
	x, y, press, ok := DecodePointerPayload(PointerPayload(-3, 200, false))
	if !ok || x != -3 || y != 200 || press {
		t.Fatalf("decode = (%d, %d, %v, %v)", x, y, press, ok)
	}
	if _, _, _, ok := DecodePointerPayload(nil); ok {
		t.Fatal("empty payload decoded")
	}
}

func TestKindString(t *testing.T) {
	if got := MsgPointer.String(); got != "pointer" {
		t.Fatalf("MsgPointer.String() = %q", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Fatalf("Kind(99).String() = %q", got)
	}
}
