package raw

import "testing"

func TestGet_DefaultAndValue(t *testing.T) {
	c := New().Prefix("RAWTEST_")

	if got := c.Get("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("Get missing = %q, want fallback", got)
	}

	t.Setenv("RAWTEST_NAME", "  linguabot  ")
	if got := c.Get("NAME", "x"); got != "linguabot" {
		t.Fatalf("Get = %q, want trimmed value", got)
	}
}

func TestGetBool_Variants(t *testing.T) {
	c := New().Prefix("RAWTEST_")

	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"1", false, true},
		{"true", false, true},
		{"yes", false, true},
		{"TRUE", false, true},
		{"0", true, false},
		{"no", true, false},
		{"banana", true, false},
	}
	for _, cse := range cases {
		t.Setenv("RAWTEST_FLAG", cse.val)
		if got := c.GetBool("FLAG", cse.def); got != cse.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", cse.val, cse.def, got, cse.want)
		}
	}
}

func TestGetInt_NonNumericFallsBack(t *testing.T) {
	c := New().Prefix("RAWTEST_")

	t.Setenv("RAWTEST_N", "42")
	if got := c.GetInt("N", 7); got != 42 {
		t.Fatalf("GetInt = %d, want 42", got)
	}

	t.Setenv("RAWTEST_N", "-3")
	if got := c.GetInt("N", 7); got != 7 {
		t.Fatalf("GetInt negative = %d, want default 7", got)
	}

	t.Setenv("RAWTEST_N", "4x")
	if got := c.GetInt("N", 7); got != 7 {
		t.Fatalf("GetInt junk = %d, want default 7", got)
	}
}
