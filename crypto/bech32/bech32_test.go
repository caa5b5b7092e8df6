package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/bequest/errors"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	payload, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	raw, err := Encode("bq", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if !bytes.HasPrefix(raw, []byte("bq1")) {
		t.Fatalf("unexpected prefix: %q", raw)
	}

	hrp, got, err := Decode(string(raw))
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "bq" {
		t.Fatalf("unexpected human readable part: %q", hrp)
	}
	if !bytes.Equal(payload, got) {
		t.Logf("want %d", payload)
		t.Logf("got  %d", got)
		t.Fatal("invalid decode")
	}
}

func TestDecodeKnownValue(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" || string(payload) != "test-payload" {
		t.Fatalf("unexpected result: %q %q", hrp, payload)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, _, err := Decode("bq1notavalidchecksum"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}
