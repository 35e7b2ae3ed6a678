package quality

import (
	"errors"
	"math"
	"testing"
)

func relDiff(got, expected float64) float64 {
	return math.Abs(got-expected) / math.Abs(expected)
}

func TestSolexaToPhred(t *testing.T) {
	// At high quality the two scales converge
	if p := SolexaToPhred(40.0); relDiff(p, 40.0) > 0.01 {
		t.Errorf("SolexaToPhred(40) = %f, expected ~40", p)
	}

	if p, expected := SolexaToPhred(20.0), 10.0*math.Log10(101.0); relDiff(p, expected) > 1e-12 {
		t.Errorf("SolexaToPhred(20) = %.12f, expected %.12f", p, expected)
	}

	if p := SolexaToPhred(3.0); p <= 0 || p >= 10 {
		t.Errorf("SolexaToPhred(3) = %f, expected (0, 10)", p)
	}

	// Solexa 0 means even odds, so Phred is 10*log10(2)
	if p, expected := SolexaToPhred(0), 10*math.Log10(2); math.Abs(p-expected) > 1e-12 {
		t.Errorf("SolexaToPhred(0) = %.12f, expected %.12f", p, expected)
	}

	if p := SolexaToPhred(-30); p <= 0 || p > 0.01 {
		t.Errorf("SolexaToPhred(-30) = %g, expected a small positive value", p)
	}
}

func TestPhredToErrorProb(t *testing.T) {
	for _, v := range []struct {
		Phred    float64
		Expected float64
	}{
		{40, 0.0001},
		{30, 0.001},
		{20, 0.01},
		{10, 0.1},
		{0, 1},
	} {
		if p := PhredToErrorProb(v.Phred); relDiff(p, v.Expected) > 0.01 {
			t.Errorf("PhredToErrorProb(%f) = %g, expected %g", v.Phred, p, v.Expected)
		}
	}

	// Monotonically decreasing
	prev := math.Inf(1)
	for q := -10.0; q <= 60; q += 0.5 {
		p := PhredToErrorProb(q)
		if p >= prev {
			t.Fatalf("PhredToErrorProb is not decreasing at %f", q)
		}
		prev = p
	}
}

func TestErrorProbIsAProbability(t *testing.T) {
	for s := -5.0; s <= 60; s += 0.25 {
		if p := SolexaToErrorProb(s); p <= 0 || p >= 1 {
			t.Fatalf("SolexaToErrorProb(%f) = %g, expected (0, 1)", s, p)
		}
	}
}

func TestCombineEmpty(t *testing.T) {
	if p := Combine(nil); p != 0.0 {
		t.Errorf("Combine(nil) = %g, expected exactly 0", p)
	}

	p, err := CombineString("")
	if err != nil {
		t.Fatal(err)
	}
	if p != 0.0 {
		t.Errorf("CombineString(\"\") = %g, expected exactly 0", p)
	}

	if p, _ := CombineString(" \t "); p != 0.0 {
		t.Errorf("CombineString of whitespace = %g, expected exactly 0", p)
	}
}

func TestCombineSingle(t *testing.T) {
	p, err := CombineString("40")
	if err != nil {
		t.Fatal(err)
	}

	expected := 1.0 - (1.0 - PhredToErrorProb(SolexaToPhred(40)))
	if relDiff(p, expected) > 1e-9 {
		t.Errorf("CombineString(\"40\") = %g, expected %g", p, expected)
	}
}

func TestCombineHighQuality(t *testing.T) {
	p, err := CombineString("40 40 40")
	if err != nil {
		t.Fatal(err)
	}
	if p >= 0.001 {
		t.Errorf("CombineString(\"40 40 40\") = %g, expected < 0.001", p)
	}
}

func TestCombineMixed(t *testing.T) {
	p, err := CombineString("40 30 20")
	if err != nil {
		t.Fatal(err)
	}
	if p <= 0 || p >= 1 {
		t.Errorf("CombineString(\"40 30 20\") = %g, expected (0, 1)", p)
	}
}

func TestCombineGrowsWithLength(t *testing.T) {
	short, _ := CombineString("40 40")
	long, _ := CombineString("40 40 40 40")
	if long <= short {
		t.Errorf("Expected %g > %g", long, short)
	}
}

func TestCombineIsOrderIndependent(t *testing.T) {
	a := Combine([]float64{40, 12, 25, -3})
	b := Combine([]float64{-3, 25, 40, 12})
	if math.Abs(a-b) > 1e-12 {
		t.Errorf("Expected %g == %g", a, b)
	}
}

func TestTabulatedMatchesDirect(t *testing.T) {
	values := []float64{7.5, -0.25, MinTabulated - 1, MaxTabulated + 1, math.Inf(1), math.Inf(-1)}
	for q := MinTabulated; q <= MaxTabulated; q++ {
		values = append(values, float64(q))
	}

	for _, s := range values {
		direct := 1.0 - (1.0 - SolexaToErrorProb(s))
		if got := Combine([]float64{s}); got != direct {
			t.Errorf("Combine([%f]) = %g, expected %g", s, got, direct)
		}
	}
}

func TestErrorProbTableIsShared(t *testing.T) {
	a := memoizedErrorProbTable.(func(int, int) []float64)(MinTabulated, MaxTabulated)
	b := memoizedErrorProbTable.(func(int, int) []float64)(MinTabulated, MaxTabulated)
	if len(a) != MaxTabulated-MinTabulated+1 {
		t.Fatalf("Expected %d entries, got %d", MaxTabulated-MinTabulated+1, len(a))
	}
	if &a[0] != &b[0] {
		t.Error("Expected the table to be built once and reused")
	}
}

func TestCombineNaNIsNotTabulated(t *testing.T) {
	if p := Combine([]float64{math.NaN(), 40}); !math.IsNaN(p) {
		t.Errorf("Expected NaN to propagate, got %g", p)
	}
}

func TestParse(t *testing.T) {
	quals, err := Parse("  40 -3\t12.5  1e1 ")
	if err != nil {
		t.Fatal(err)
	}

	expected := []float64{40, -3, 12.5, 10}
	if len(quals) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, quals)
	}
	for i := range expected {
		if quals[i] != expected[i] {
			t.Errorf("Position %d: expected %f, got %f", i, expected[i], quals[i])
		}
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := CombineString("40 4O 40")

	var tokenErr *TokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("Expected a *TokenError, got %v", err)
	}
	if tokenErr.Token != "4O" {
		t.Errorf("Expected the offending token to be 4O, got %q", tokenErr.Token)
	}
}

func TestParseTokenSyntax(t *testing.T) {
	quals, err := Parse("1_0 4_0_0 1e1_0")
	if err != nil {
		t.Fatal(err)
	}
	if quals[0] != 10 || quals[1] != 400 || quals[2] != 1e10 {
		t.Errorf("Unexpected values: %v", quals)
	}

	for _, bad := range []string{"0x1p4", "0X10", "-0x1.8p1", "_10", "10_", "1__0", "1_.5", "1._5"} {
		_, err := Parse(bad)

		var tokenErr *TokenError
		if !errors.As(err, &tokenErr) {
			t.Errorf("%q: expected a *TokenError, got %v", bad, err)
		}
	}
}
