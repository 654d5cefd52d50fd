//go:build !integration

package signature

import (
	"strings"
	"testing"
)

func TestSign(t *testing.T) {
	payload := []byte(`<order number="10"></order>`)
	secret := []byte("s3cret")

	t.Run("is deterministic", func(t *testing.T) {
		a := Sign(payload, secret)
		b := Sign(payload, secret)
		if a != b {
			t.Fatalf("same input produced different digests: %s vs %s", a, b)
		}
	})

	t.Run("is lowercase hex of sha512 length", func(t *testing.T) {
		d := Sign(payload, secret)
		if len(d) != 128 {
			t.Fatalf("expected 128 hex chars, got %d", len(d))
		}
		if d != strings.ToLower(d) {
			t.Errorf("digest is not lowercase: %s", d)
		}
	})

	t.Run("depends on payload and secret", func(t *testing.T) {
		base := Sign(payload, secret)
		if Sign([]byte(`<order number="11"></order>`), secret) == base {
			t.Error("payload change did not change digest")
		}
		if Sign(payload, []byte("other")) == base {
			t.Error("secret change did not change digest")
		}
	})
}

func TestVerify(t *testing.T) {
	payload := []byte("canonical bytes")
	secret := []byte("s3cret")
	digest := Sign(payload, secret)

	t.Run("accepts its own signature", func(t *testing.T) {
		if !Verify(payload, secret, digest) {
			t.Fatal("expected Verify to accept Sign output")
		}
	})

	t.Run("rejects a flipped payload byte", func(t *testing.T) {
		mutated := append([]byte(nil), payload...)
		mutated[0] ^= 0x01
		if Verify(mutated, secret, digest) {
			t.Error("expected rejection after payload mutation")
		}
	})

	t.Run("rejects a flipped secret byte", func(t *testing.T) {
		mutated := append([]byte(nil), secret...)
		mutated[0] ^= 0x01
		if Verify(payload, mutated, digest) {
			t.Error("expected rejection after secret mutation")
		}
	})

	t.Run("rejects a flipped digest character", func(t *testing.T) {
		tampered := []byte(digest)
		if tampered[0] == 'a' {
			tampered[0] = 'b'
		} else {
			tampered[0] = 'a'
		}
		if Verify(payload, secret, string(tampered)) {
			t.Error("expected rejection after digest mutation")
		}
	})

	t.Run("malformed hex compares false, not error", func(t *testing.T) {
		if Verify(payload, secret, "not-hex-at-all") {
			t.Error("expected malformed digest to compare false")
		}
		if Verify(payload, secret, "") {
			t.Error("expected empty digest to compare false")
		}
		if Verify(payload, secret, digest[:100]) {
			t.Error("expected truncated digest to compare false")
		}
	})
}

func TestHashPassword(t *testing.T) {
	// sha256("password") — fixed vector so the wire format never drifts.
	const want = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	if got := HashPassword("password"); got != want {
		t.Fatalf("HashPassword mismatch:\n got %s\nwant %s", got, want)
	}
}
