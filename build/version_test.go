package build

import (
	"testing"
)

// TestVersionCmp checks that in all cases, Compare returns the correct
// result.
func TestVersionCmp(t *testing.T) {
	versionTests := []struct {
		a, b ProtocolVersion
		exp  int
	}{
		{NewVersion(0, 1, 0), NewVersion(0, 0, 9), 1},
		{NewVersion(0, 1, 0), NewVersion(0, 1, 0), 0},
		{NewVersion(0, 1, 0), NewVersion(0, 1, 1), -1},
		{NewVersion(0, 1, 0), NewVersion(1, 1, 0), -1},
		{NewPrereleaseVersion(0, 1, 1, "0"), NewVersion(0, 1, 1), -1},
		{NewPrereleaseVersion(1, 2, 3, "0"), NewVersion(1, 2, 3), -1},
		{NewVersion(1, 2, 3), NewPrereleaseVersion(1, 2, 3, "0"), 1},
		{NewPrereleaseVersion(1, 2, 3, "foo"), NewPrereleaseVersion(1, 2, 3, "bar"), 0},
	}

	for _, test := range versionTests {
		a, b := test.a, test.b
		if actual := a.Compare(b); actual != test.exp {
			t.Errorf("Comparing %s to %s should return %v (got %v)",
				a.String(), b.String(), test.exp, actual)
		}
	}
}

func TestVersionString(t *testing.T) {
	versionTests := []struct {
		v   ProtocolVersion
		exp string
	}{
		{NewPrereleaseVersion(1, 0, 0, "123456789"), "1.0.0-12345678"},
		{NewPrereleaseVersion(1, 0, 0, ""), "1.0.0"},
		{NewPrereleaseVersion(1, 2, 3, ""), "1.2.3"},
		{NewVersion(1, 0, 0), "1.0.0"},
		{NewVersion(1, 2, 3), "1.2.3"},
		{NewVersion(0, 0, 0), "0.0.0"},
	}

	for _, test := range versionTests {
		v := test.v
		if actual := v.String(); actual != test.exp {
			t.Errorf("stringifying %v should result in %v (got %v)",
				v, test.exp, actual)
		}
	}
}

func TestVersionStringReflection(t *testing.T) {
	testCases := []struct {
		in, out string
	}{
		{"1", "1.0.0"},
		{"1.1", "1.1.0"},
		{"1.1.1", "1.1.1"},
		{"1.1.1-1", "1.1.1-1"},
		{"255.255.255-12345678", "255.255.255-12345678"},
		{"1.2.3-alpha", "1.2.3-alpha"},
		{"1-4", "1.0.0-4"},
		{"1.2-4", "1.2.0-4"},
		{"1.2.3-4", "1.2.3-4"},
		{"0.1", "0.1.0"},
		{"0.0.1", "0.0.1"},
	}

	for index, testCase := range testCases {
		version, err := Parse(testCase.in)
		if err != nil {
			t.Errorf("test %d failed: %v", index, err)
			continue
		}
		out := version.String()
		if testCase.out != out {
			t.Errorf("test %d failed: expected %q, while received %q", index, testCase.out, out)
			continue
		}
		version2, err := Parse("v" + testCase.in)
		if err != nil {
			t.Errorf("test %d (v-prefixed) failed: %v", index, err)
			continue
		}
		if version.Compare(version2) != 0 {
			t.Errorf("test %d (v-prefixed) failed: expected %q, while received %q", index, version, version2)
		}
	}
}

func TestVersionJSONReflection(t *testing.T) {
	testCases := []ProtocolVersion{
		NewVersion(0, 0, 0),
		NewVersion(1, 2, 3),
		NewPrereleaseVersion(1, 2, 3, "4"),
		NewPrereleaseVersion(255, 255, 255, "        "),
	}
	for index, in := range testCases {
		bytes, err := in.MarshalJSON()
		if err != nil {
			t.Errorf("test %d failed: MarshalJSON: %v", index, err)
			continue
		}

		var out ProtocolVersion
		err = out.UnmarshalJSON(bytes)
		if err != nil {
			t.Errorf("test %d failed: UnmarshalJSON: %v", index, err)
			continue
		}

		if in.String() != out.String() {
			t.Errorf("test %d failed: expected %q, while received %q", index, in, out)
		}
	}
}

func TestInvalidStringVersionRange(t *testing.T) {
	invalid := []string{
		"256", "1.256", "1.1.256", "1.256.256", "256.256.256",
	}
	for _, raw := range invalid {
		if _, err := Parse(raw); err == nil {
			t.Errorf("expected %q to be out of range", raw)
		}
	}
}
