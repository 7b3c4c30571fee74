package locale

import "testing"

func TestGet(t *testing.T) {
	if got := Get("TURN_COUNTER", 3); got != "Turn 3" {
		t.Errorf("Get(TURN_COUNTER, 3) = %q", got)
	}
	if got := Get("NO_SUCH_KEY"); got != "NO_SUCH_KEY" {
		t.Errorf("Get(NO_SUCH_KEY) = %q, want the key back", got)
	}
}
