package theme

import "testing"

func TestGetFallsBackToDefault(t *testing.T) {
	if Get("missing") != Default() {
		t.Fatalf("expected unknown theme to resolve to the default styles")
	}
}

func TestNamesAreKnown(t *testing.T) {
	names := Names()
	if len(names) == 0 || names[0] != DefaultName {
		t.Fatalf("expected %q first, got %v", DefaultName, names)
	}
	for _, name := range names {
		if !Has(name) {
			t.Fatalf("expected %q to be registered", name)
		}
		if Get(name).Cursor == nil {
			t.Fatalf("expected %q to define a cursor style", name)
		}
	}
}

func TestNextWraps(t *testing.T) {
	names := Names()
	last := names[len(names)-1]
	if got := Next(last); got != names[0] {
		t.Fatalf("expected wrap to %q, got %q", names[0], got)
	}
	if got := Next("missing"); got != DefaultName {
		t.Fatalf("expected default for unknown theme, got %q", got)
	}
}
