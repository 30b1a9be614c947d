package wave

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubstituteString(t *testing.T) {
	env := Env{"core": "top.core", "i": 3}

	cases := []struct {
		in   string
		want string
	}{
		{"$core.rob.valid", "top.core.rob.valid"},
		{"${core}.rob.valid", "top.core.rob.valid"},
		{"entry_${i}_pc", "entry_3_pc"},
		{"entry_$i_pc", "entry_3_pc"},
		{"no references", "no references"},
		{"$unknown stays", "$unknown stays"},
		{"", ""},
	}

	for _, c := range cases {
		if got := SubstituteString(c.in, env); got != c.want {
			t.Errorf("SubstituteString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSubstituteLongestKeyFirst(t *testing.T) {
	env := Env{"core": "CORE", "core_b": "CORE_B"}

	if got, want := SubstituteString("$core_b.x", env), "CORE_B.x"; got != want {
		t.Errorf("SubstituteString = %q, want %q", got, want)
	}
}

func TestSubstituteRecursive(t *testing.T) {
	env := Env{"x": "top"}

	in := map[string]any{
		"a": "$x.a",
		"b": []any{"$x.b", 7, true},
		"c": map[string]any{"d": "${x}.d"},
	}

	want := map[string]any{
		"a": "top.a",
		"b": []any{"top.b", 7, true},
		"c": map[string]any{"d": "top.d"},
	}

	if diff := cmp.Diff(want, Substitute(in, env)); diff != "" {
		t.Errorf("Substitute mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandEnvFixedPoint(t *testing.T) {
	env := map[string]string{
		"top":  "TestDriver.testHarness",
		"chip": "$top.chiptop",
		"core": "$chip.core",
	}

	got, err := ExpandEnv(env)
	if err != nil {
		t.Fatalf("ExpandEnv: %v", err)
	}

	want := map[string]string{
		"top":  "TestDriver.testHarness",
		"chip": "TestDriver.testHarness.chiptop",
		"core": "TestDriver.testHarness.chiptop.core",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExpandEnv mismatch (-want +got):\n%s", diff)
	}

	// Input must not be mutated.
	if env["core"] != "$chip.core" {
		t.Errorf("ExpandEnv mutated its input: %q", env["core"])
	}
}

func TestExpandEnvCycle(t *testing.T) {
	_, err := ExpandEnv(map[string]string{
		"a": "$b",
		"b": "$a",
	})
	if !errors.Is(err, ErrEnvCycle) {
		t.Fatalf("ExpandEnv: error = %v, want %v", err, ErrEnvCycle)
	}
}

func TestExpandEnvEmpty(t *testing.T) {
	got, err := ExpandEnv(nil)
	if err != nil {
		t.Fatalf("ExpandEnv: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("ExpandEnv(nil) = %v, want empty", got)
	}
}

func TestEnvironmentRendersValues(t *testing.T) {
	env := Environment(map[string]string{"x": "top"})
	env["n"] = int64(12)
	env["f"] = 1.5
	env["b"] = false

	if got, want := SubstituteString("$x/$n/$f/$b", env), "top/12/1.5/false"; got != want {
		t.Errorf("SubstituteString = %q, want %q", got, want)
	}
}
