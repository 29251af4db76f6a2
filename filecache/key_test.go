package filecache

import (
	"errors"
	"testing"
)

func TestKeyFilename(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"both fields", Key{ContentKey: "alpha", ContentHash: "deadbeef"}, "alpha_deadbeef"},
		{"key only", Key{ContentKey: "alpha"}, "alpha_"},
		{"hash only", Key{ContentHash: "deadbeef"}, "_deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.key.Filename()
			if err != nil {
				t.Fatalf("Filename failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyFilenameEmpty(t *testing.T) {
	_, err := Key{}.Filename()
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Filename on an empty key returned %v, want ErrInvalidKey", err)
	}
}

func TestKeyIsZero(t *testing.T) {
	if !(Key{}).IsZero() {
		t.Fatal("empty key should be zero")
	}
	if (Key{ContentKey: "alpha"}).IsZero() {
		t.Fatal("key with a content key should not be zero")
	}
	if (Key{ContentHash: "deadbeef"}).IsZero() {
		t.Fatal("key with a content hash should not be zero")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("etag", "1024")
	b := Fingerprint("etag", "1024")
	if a != b {
		t.Fatalf("Fingerprint is not deterministic: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("Fingerprint length = %d, want 16 hex characters", len(a))
	}

	// Part boundaries must matter.
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Fatal("Fingerprint ignores part boundaries")
	}
}
