package llm

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n[1,2]\n```", `[1,2]`},
		{"leading prose", "Here is the JSON you asked for:\n{\"a\":1}", `{"a":1}`},
		{"trailing prose", "{\"a\":{\"b\":2}}\nLet me know if you need more.", `{"a":{"b":2}}`},
		{"array with prose", "Result: [{\"a\":1}] done", `[{"a":1}]`},
		{"no json", "  nothing here  ", "nothing here"},
		{"unbalanced", "oops {\"a\":", `oops {"a":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
