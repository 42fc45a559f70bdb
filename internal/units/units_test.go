package units

import "testing"

func TestLabels(t *testing.T) {
	cases := []struct {
		unit  Unit
		label string
	}{
		{Inches, "in"},
		{Centimeters, "cm"},
		{Millimeters, "mm"},
		{Furlongs, "fur"},
	}

	for _, c := range cases {
		if got := c.unit.Label(); got != c.label {
			t.Errorf("%s.Label() = %q, want %q", c.unit, got, c.label)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, u := range All() {
		parsed, err := Parse(u.Label())
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", u.Label(), err)
		}
		if parsed != u {
			t.Errorf("Parse(%q) = %v, want %v", u.Label(), parsed, u)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("parsec"); err == nil {
		t.Error("Parse of unknown label should return an error")
	}
}

func TestDefaultUnit(t *testing.T) {
	if DefaultUnit != Inches {
		t.Errorf("DefaultUnit = %v, want Inches", DefaultUnit)
	}
}
