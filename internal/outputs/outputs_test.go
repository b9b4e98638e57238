package outputs_test

import (
	"path/filepath"
	"testing"

	"leolang.dev/synth/internal/outputs"
)

func TestVerificationKeyPathJoinsDirAndExtension(t *testing.T) {
	got := outputs.VerificationKeyPath("build", "token")
	want := filepath.Join("build", "token.lvk")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
