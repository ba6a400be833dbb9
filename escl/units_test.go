package escl

import "testing"

// TestMMToPWGUsesExactInch pins the corrected mm-per-inch constant.
// A naive (mm*dpi)/25 conversion would return 2520 here instead of
// the correct 2480; the two are close enough at A4 width that
// regressions are easy to miss without this check.
func TestMMToPWGUsesExactInch(t *testing.T) {
	// A4 width is 210mm. At 300 DPI that's 2480.3 PWG units using the
	// correct /25.4 divisor, truncated to 2480.
	got := MMToPWG(210, 300)
	want := 2480
	if got != want {
		t.Errorf("MMToPWG(210, 300) = %d, want %d", got, want)
	}

	// The buggy /25 divisor would have produced 2520 here, a value
	// this test must never accept.
	buggy := int((210.0 * 300) / 25)
	if got == buggy {
		t.Errorf("MMToPWG regressed to the uncorrected /25 divisor")
	}
}

func TestPWGToMMRoundTrips(t *testing.T) {
	mm := 210.0
	dpi := 300
	units := MMToPWG(mm, dpi)
	back := PWGToMM(units, dpi)

	diff := back - mm
	if diff < 0 {
		diff = -diff
	}
	if diff > 0.2 {
		t.Errorf("round trip drifted too far: %v mm -> %d units -> %v mm", mm, units, back)
	}
}
