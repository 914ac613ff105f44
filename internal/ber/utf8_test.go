package ber

import (
	"bytes"
	"testing"
)

func TestReadUTF8String_AcceptsValidUTF8(t *testing.T) {
	enc := NewBEREncoder(16)
	if err := enc.WriteOctetString([]byte("Jürgen Müller")); err != nil {
		t.Fatalf("WriteOctetString() error = %v", err)
	}

	dec := NewBERDecoder(enc.Bytes())
	got, err := dec.ReadUTF8String()
	if err != nil {
		t.Fatalf("ReadUTF8String() error = %v", err)
	}
	if !bytes.Equal(got, []byte("Jürgen Müller")) {
		t.Errorf("ReadUTF8String() = %q, want %q", got, "Jürgen Müller")
	}
}

func TestReadUTF8String_RejectsInvalidUTF8(t *testing.T) {
	enc := NewBEREncoder(16)
	if err := enc.WriteOctetString([]byte{0xFF, 0xFE, 0x00}); err != nil {
		t.Fatalf("WriteOctetString() error = %v", err)
	}

	dec := NewBERDecoder(enc.Bytes())
	_, err := dec.ReadUTF8String()
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}
