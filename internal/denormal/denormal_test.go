package denormal

import "testing"

func TestGuardDoesNotPanic(t *testing.T) {
	_ = Guard()
}
