package auth

import "testing"

func TestHash_SamePasswordDifferentDigests(t *testing.T) {
	h := NewPasswordHasher()

	first, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical, salt is not random")
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	h := NewPasswordHasher()

	digest, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !h.Verify("secret1", digest) {
		t.Error("correct password did not verify")
	}
	if h.Verify("secret2", digest) {
		t.Error("wrong password verified")
	}
}

func TestVerify_GarbageDigest_ReturnsFalse(t *testing.T) {
	h := NewPasswordHasher()

	if h.Verify("secret1", "not-a-bcrypt-digest") {
		t.Error("garbage digest verified")
	}
}
