package notebooks

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestParseTagged(t *testing.T) {
	step, format, err := ParseFormat(`<comment>
Test comment
</comment>
<code>
print("hello")
</code>
<final>
false
</final>`)
	if err != nil {
		t.Fatal(err)
	}
	if format != FormatTagged {
		t.Fatalf("got %v", format)
	}
	if step.Comment != "Test comment" {
		t.Fatalf("got %q", step.Comment)
	}
	if step.Code != `print("hello")` {
		t.Fatalf("got %q", step.Code)
	}
	if step.Final {
		t.Fatal("should not be final")
	}
	if step.Output != nil {
		t.Fatal("should have no output")
	}
}

func TestParseTaggedFinal(t *testing.T) {
	for _, value := range []string{"true", "TRUE", " yes ", "Yes"} {
		step, err := Parse("<comment>Output the final answer</comment><code>print(1)</code><final>" + value + "</final>")
		if err != nil {
			t.Fatal(err)
		}
		if !step.Final {
			t.Fatalf("%q: not final", value)
		}
	}
	for _, value := range []string{"false", "no", "", "1"} {
		step, err := Parse("<comment>c</comment><code>print(1)</code><final>" + value + "</final>")
		if err != nil {
			t.Fatal(err)
		}
		if step.Final {
			t.Fatalf("%q: final", value)
		}
	}
}

func TestParseTaggedNoFinal(t *testing.T) {
	step, err := Parse("some preamble\n<comment>c</comment>\n<code>x = 1</code>\ntrailing")
	if err != nil {
		t.Fatal(err)
	}
	if step.Final {
		t.Fatal("final")
	}
	if step.Code != "x = 1" {
		t.Fatalf("got %q", step.Code)
	}
}

func TestParseTaggedFence(t *testing.T) {
	step, err := Parse("<comment>c</comment><code>\n```python\nprint(1)\nprint(2)\n```\n</code>")
	if err != nil {
		t.Fatal(err)
	}
	if step.Code != "print(1)\nprint(2)" {
		t.Fatalf("got %q", step.Code)
	}
}

func TestParseStructured(t *testing.T) {
	step, format, err := ParseFormat(`{"comment": "Test comment", "code": "print('hello')", "final": false}`)
	if err != nil {
		t.Fatal(err)
	}
	if format != FormatStructured {
		t.Fatalf("got %v", format)
	}
	if step.Comment != "Test comment" || step.Code != "print('hello')" || step.Final {
		t.Fatalf("got %+v", step)
	}

	// output in the response is ignored
	step, err = Parse(`{"comment": "c", "code": "x = 1", "output": "fake", "final": true}`)
	if err != nil {
		t.Fatal(err)
	}
	if step.Output != nil || !step.Final {
		t.Fatalf("got %+v", step)
	}
}

func TestParseStructuredFallback(t *testing.T) {
	// missing code field in JSON, tags inside strings still match
	step, format, err := ParseFormat(`{"comment": "<comment>c</comment><code>print(1)</code>"}`)
	if err != nil {
		t.Fatal(err)
	}
	if format != FormatTagged {
		t.Fatalf("got %v", format)
	}
	if step.Code != "print(1)" {
		t.Fatalf("got %q", step.Code)
	}
}

func TestParseStructuredMissingField(t *testing.T) {
	for _, c := range []struct {
		raw   string
		field string
	}{
		{`{"comment": "c"}`, "code"},
		{`{"code": "print(1)"}`, "comment"},
		{`{"comment": "c", "code": null, "final": true}`, "code"},
		{`{}`, "comment"},
	} {
		_, format, err := ParseFormat(c.raw)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%q: got %v", c.raw, err)
		}
		if parseErr.Field != c.field {
			t.Fatalf("%q: got %s", c.raw, parseErr.Field)
		}
		if !strings.Contains(parseErr.Reason, "field") {
			t.Fatalf("%q: got %q", c.raw, parseErr.Reason)
		}
		if format != FormatStructured {
			t.Fatalf("%q: got %v", c.raw, format)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		raw   string
		field string
	}{
		{"", "comment"},
		{"no tags at all", "comment"},
		{"<code>print(1)</code>", "comment"},
		{"<comment>c</comment>", "code"},
		{"<comment>  </comment><code>print(1)</code>", "comment"},
		{"<comment>c</comment><code>\n</code>", "code"},
		{`{"comment": "", "code": "x"}`, "comment"},
		{`{"comment": "c", "code": ""}`, "code"},
	}
	for _, c := range cases {
		_, err := Parse(c.raw)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%q: got %v", c.raw, err)
		}
		if parseErr.Field != c.field {
			t.Fatalf("%q: got %s", c.raw, parseErr.Field)
		}
	}
}

func TestParseProperties(t *testing.T) {
	text := rapid.StringMatching(`[a-zA-Z0-9 =()+*]{1,30}`)
	rapid.Check(t, func(t *rapid.T) {
		comment := text.Draw(t, "comment")
		code := text.Draw(t, "code")
		final := rapid.Bool().Draw(t, "final")
		raw := "<comment>" + comment + "</comment>\n<code>" + code + "</code>"
		if final {
			raw += "\n<final>true</final>"
		}
		step, err := Parse(raw)
		trimmedComment := strings.TrimSpace(comment)
		trimmedCode := strings.TrimSpace(code)
		if trimmedComment == "" || trimmedCode == "" {
			if err == nil {
				t.Fatal("expected error")
			}
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		if step.Comment != trimmedComment || step.Code != trimmedCode || step.Final != final {
			t.Fatalf("got %+v", step)
		}
	})
}
