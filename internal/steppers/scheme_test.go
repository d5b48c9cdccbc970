package steppers

import (
	"reflect"
	"testing"

	"github.com/san-kum/sphstep/internal/particles"
)

// newGroup builds a group carrying every field the scheme declares.
func newGroup(t testing.TB, s Scheme, n int) *particles.Group {
	t.Helper()
	fields, err := RequiredFields(s)
	if err != nil {
		t.Fatalf("required fields for %s: %v", s.Name(), err)
	}
	return particles.New("fluid", n, fields...)
}

func TestExtractUsage(t *testing.T) {
	u, err := ExtractUsage(NewTransportVelocity(), PhasePredictor)
	if err != nil {
		t.Fatalf("extract usage: %v", err)
	}

	wantDest := []string{"au", "auhat", "av", "avhat", "u", "uhat", "v", "vhat", "x", "y"}
	if !reflect.DeepEqual(u.Dest, wantDest) {
		t.Errorf("dest fields: got %v, expected %v", u.Dest, wantDest)
	}
	if len(u.Src) != 0 {
		t.Errorf("src fields: got %v, expected none", u.Src)
	}
	if !u.NeedsDt {
		t.Error("predictor should consume dt")
	}
}

func TestExtractUsageDropsIndex(t *testing.T) {
	u, err := ExtractUsage(NewEuler(), PhaseCorrector)
	if err != nil {
		t.Fatalf("extract usage: %v", err)
	}
	for _, name := range u.Dest {
		if name == "idx" {
			t.Error("d_idx must not be classified as a field")
		}
	}
}

type badScheme struct{}

func (badScheme) Name() string { return "bad" }

func (badScheme) Params(ph Phase) []string {
	if ph == PhaseCorrector {
		return []string{"d_idx", "velocity", "dt"}
	}
	return nil
}

func (badScheme) Bind(Phase, *Binding) Kernel { return nil }

func TestExtractUsageRejectsUnclassifiedParam(t *testing.T) {
	if _, err := ExtractUsage(badScheme{}, PhaseCorrector); err == nil {
		t.Fatal("expected error for parameter without a field role")
	}
}

func TestExtractUsageNoOpPhase(t *testing.T) {
	u, err := ExtractUsage(NewEuler(), PhaseInitialize)
	if err != nil {
		t.Fatalf("extract usage: %v", err)
	}
	if len(u.Dest) != 0 || len(u.Src) != 0 || u.NeedsDt {
		t.Errorf("no-op phase should declare nothing, got %+v", u)
	}
}

func TestRequiredFields(t *testing.T) {
	got, err := RequiredFields(NewEuler())
	if err != nil {
		t.Fatalf("required fields: %v", err)
	}
	want := []string{"arho", "au", "av", "aw", "rho", "u", "v", "w", "x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("euler fields: got %v, expected %v", got, want)
	}
}

func TestByNameRoundTrip(t *testing.T) {
	for _, name := range Names() {
		s, err := ByName(name)
		if err != nil {
			t.Errorf("lookup %q: %v", name, err)
			continue
		}
		if s.Name() != name {
			t.Errorf("lookup %q returned scheme named %q", name, s.Name())
		}
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("leapfrog"); err == nil {
		t.Fatal("expected error for unknown scheme name")
	}
}

func TestPhaseString(t *testing.T) {
	cases := []struct {
		ph   Phase
		want string
	}{
		{PhaseInitialize, "initialize"},
		{PhasePredictor, "predictor"},
		{PhaseCorrector, "corrector"},
	}
	for _, c := range cases {
		if got := c.ph.String(); got != c.want {
			t.Errorf("phase %d: got %q, expected %q", int(c.ph), got, c.want)
		}
	}
}

func TestUsageFieldsUnion(t *testing.T) {
	u := Usage{Dest: []string{"u", "x"}, Src: []string{"rho", "u"}}
	want := []string{"rho", "u", "x"}
	if got := u.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("union: got %v, expected %v", got, want)
	}
}
