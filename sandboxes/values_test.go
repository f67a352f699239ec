package sandboxes

import (
	"testing"

	"go.starlark.net/starlark"
)

func TestToValue(t *testing.T) {
	type testStruct struct {
		Exported   string
		unexported int
	}

	ptrStruct := &testStruct{
		Exported:   "hello",
		unexported: 42,
	}

	dict := func(kvs ...starlark.Value) starlark.Value {
		d := starlark.NewDict(len(kvs) / 2)
		for i := 0; i < len(kvs); i += 2 {
			_ = d.SetKey(kvs[i], kvs[i+1])
		}
		return d
	}

	testCases := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"bool", true, starlark.True},
		{"string", "hello", starlark.String("hello")},
		{"bytes", []byte("abc"), starlark.Bytes("abc")},
		{"int", 42, starlark.MakeInt(42)},
		{"int8", int8(42), starlark.MakeInt(42)},
		{"uint32", uint32(42), starlark.MakeInt(42)},
		{"float64", 3.5, starlark.Float(3.5)},
		{"starlark value", starlark.String("x"), starlark.String("x")},
		{"[]any", []any{1, "a", true}, starlark.NewList([]starlark.Value{starlark.MakeInt(1), starlark.String("a"), starlark.True})},
		{"[]string", []string{"a", "b"}, starlark.NewList([]starlark.Value{starlark.String("a"), starlark.String("b")})},
		{"map[string]any", map[string]any{"a": 1}, dict(starlark.String("a"), starlark.MakeInt(1))},
		{"map[int]bool", map[int]bool{1: true}, dict(starlark.MakeInt(1), starlark.True)},
		{"struct", testStruct{Exported: "hello"}, dict(starlark.String("Exported"), starlark.String("hello"))},
		{"pointer to struct", ptrStruct, dict(starlark.String("Exported"), starlark.String("hello"))},
		{"nil pointer", (*testStruct)(nil), starlark.None},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ToValue(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			equal, err := starlark.Equal(actual, tc.expected)
			if err != nil {
				t.Fatalf("comparison failed: %v", err)
			}
			if !equal {
				t.Errorf("ToValue(%#v) = %v, want %v", tc.input, actual, tc.expected)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		if _, err := ToValue(make(chan bool)); err == nil {
			t.Fatal("should fail")
		}
	})
}

func TestStringify(t *testing.T) {
	for _, c := range []struct {
		value    starlark.Value
		expected string
	}{
		{starlark.String("raw"), "raw"},
		{starlark.MakeInt(-3), "-3"},
		{starlark.True, "True"},
		{starlark.None, "None"},
		{starlark.Tuple{starlark.MakeInt(1), starlark.String("a")}, `(1, "a")`},
		{starlark.NewBuiltin("foo", nil), "<built-in function foo>"},
	} {
		if got := Stringify(c.value); got != c.expected {
			t.Fatalf("got %q, want %q", got, c.expected)
		}
	}
}
