package wave

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"strconv"
	"strings"
)

// Env is the substitution environment threaded through expansion. Values
// start as the document's env strings; iterators contribute ints and
// expressions contribute whatever they evaluate to.
type Env map[string]any

// Environment builds an expansion environment from expanded document env
// values.
func Environment(vars map[string]string) Env {
	env := make(Env, len(vars))

	for k, v := range vars {
		env[k] = v
	}

	return env
}

func (e Env) clone() Env {
	return maps.Clone(e)
}

// keys returns the environment's keys ordered longest first, ties broken
// lexicographically. Longer keys must substitute first so that "$core" can
// never clobber a reference to "$core_b".
func (e Env) keys() []string {
	keys := make([]string, 0, len(e))

	for k := range e {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	return keys
}

// SubstituteString replaces every $var and ${var} reference in s with the
// rendered value of var. Unknown references are left intact.
func SubstituteString(s string, env Env) string {
	if !strings.ContainsRune(s, '$') {
		return s
	}

	for _, k := range env.keys() {
		v := render(env[k])
		s = strings.ReplaceAll(s, "${"+k+"}", v)
		s = strings.ReplaceAll(s, "$"+k, v)
	}

	return s
}

// Substitute applies SubstituteString recursively through sequences and
// mappings. Mappings are rebuilt in sorted key order so results are
// deterministic. Non-string scalars pass through untouched.
func Substitute(value any, env Env) any {
	switch v := value.(type) {
	case string:
		return SubstituteString(v, env)

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Substitute(item, env)
		}

		return out

	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		out := make(map[string]any, len(v))
		for _, k := range keys {
			out[k] = Substitute(v[k], env)
		}

		return out

	default:
		return value
	}
}

// ExpandEnv resolves references between document env values to a fixed
// point. A value never substitutes references to its own key. Expansion of
// n variables converges within n passes when acyclic, so needing more means
// the values reference each other in a cycle.
func ExpandEnv(vars map[string]string) (map[string]string, error) {
	out := maps.Clone(vars)
	if out == nil {
		out = map[string]string{}
	}

	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	for pass := 0; pass <= len(out)+1; pass++ {
		changed := false

		for _, k := range keys {
			next := out[k]

			for _, ref := range keys {
				if ref == k {
					continue
				}

				next = strings.ReplaceAll(next, "${"+ref+"}", out[ref])
				next = strings.ReplaceAll(next, "$"+ref, out[ref])
			}

			if next != out[k] {
				out[k] = next
				changed = true
			}
		}

		if !changed {
			return out, nil
		}
	}

	return nil, ErrEnvCycle.With(slog.Any("env", vars))
}

// render formats an environment value for splicing into a string.
func render(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
