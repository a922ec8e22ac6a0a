package qa

import "testing"

func TestNewSessionID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		if len(id) != 8 {
			t.Fatalf("session id %q: want length 8, got %d", id, len(id))
		}
		for _, r := range id {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
				t.Fatalf("session id %q contains non-hex rune %q", id, r)
			}
		}
		seen[id] = struct{}{}
	}
	// 100 draws from a 32-bit space colliding down to a handful would
	// mean the source is broken, not unlucky.
	if len(seen) < 95 {
		t.Errorf("expected mostly distinct ids, got %d distinct of 100", len(seen))
	}
}
