package embedded

import (
	"embed"
	"testing"
)

//go:embed testdata
var testFS embed.FS

func TestOpenRequiresInit(t *testing.T) {
	initialized = false
	if _, err := Open("assets/config/jetlag.yaml"); err == nil {
		t.Error("expected error before Init")
	}
	if _, err := ReadFile("assets/config/jetlag.yaml"); err == nil {
		t.Error("expected error before Init")
	}
}

func TestPathNormalization(t *testing.T) {
	Init(testFS)
	if !IsInitialized() {
		t.Fatal("expected initialized state")
	}

	// Unknown prefixes are rejected even after Init.
	if _, err := ReadFile("data/levels.yaml"); err == nil {
		t.Error("expected error for non-assets prefix")
	}
	// "./" prefixes are stripped before lookup; the file itself does not
	// exist in the test FS, but the error must come from the FS, not the
	// prefix check.
	if _, err := Open("./assets/missing.yaml"); err == nil {
		t.Error("expected not-found error for missing file")
	}
}
