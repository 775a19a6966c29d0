package mode

import "testing"

func TestParseOnlyLiteralDryRunSimulates(t *testing.T) {
	cases := []struct {
		arg  string
		want Mode
	}{
		{"--dry-run", Simulated},
		{"", Real},
		{"--dryrun", Real},
		{"dry-run", Real},
		{"--DRY-RUN", Real},
		{"apply", Real},
	}
	for _, tc := range cases {
		if got := Parse(tc.arg); got != tc.want {
			t.Fatalf("Parse(%q) = %s, want %s", tc.arg, got, tc.want)
		}
	}
}

func TestModeString(t *testing.T) {
	if Real.String() != "real" {
		t.Fatalf("Real.String() = %q", Real.String())
	}
	if Simulated.String() != "dry-run" {
		t.Fatalf("Simulated.String() = %q", Simulated.String())
	}
}
