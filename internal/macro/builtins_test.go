package macro

import (
	"strings"
	"testing"
)

// newTestEnv returns an Env whose renderers wrap their input in markers so
// tests can see what was rendered.
func newTestEnv() *Env {
	return &Env{
		Context:      NewContext(),
		Depth:        1,
		Render:       func(md string) string { return "<R>" + md + "</R>" },
		RenderInline: func(md string) string { return "<I>" + md + "</I>" },
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	first := Count([]string{"a", "b"}, env)
	second := Count([]string{"x"}, env)

	if first.Kind != KindText {
		t.Fatalf("Kind = %v, want KindText", first.Kind)
	}
	if first.Value != "计数: **1** (参数: a,b)" {
		t.Errorf("first = %q", first.Value)
	}
	if second.Value != "计数: **2** (参数: x)" {
		t.Errorf("second = %q", second.Value)
	}
}

func TestCount_FreshContextRestarts(t *testing.T) {
	t.Parallel()

	Count(nil, newTestEnv())
	out := Count([]string{""}, newTestEnv())
	if !strings.Contains(out.Value, "**1**") {
		t.Errorf("counter leaked between contexts: %q", out.Value)
	}
}

func TestDefCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		defArgs  []string
		callArgs []string
		want     Output
	}{
		{
			name:     "substitutes parameters",
			defArgs:  []string{"greet", "Hello {0} and {1}"},
			callArgs: []string{"greet", "World", "Moon"},
			want:     HTML("<I>Hello World and Moon</I>"),
		},
		{
			name:     "missing parameter kept literally",
			defArgs:  []string{"greet", "Hello {0} {1}"},
			callArgs: []string{"greet", "World"},
			want:     HTML("<I>Hello World {1}</I>"),
		},
		{
			name:     "name is trimmed",
			defArgs:  []string{" greet ", "hi"},
			callArgs: []string{"greet"},
			want:     HTML("<I>hi</I>"),
		},
		{
			name:     "unknown template is empty",
			defArgs:  []string{"greet", "hi"},
			callArgs: []string{"other"},
			want:     Empty,
		},
		{
			name:     "def without body stores empty template",
			defArgs:  []string{"blank"},
			callArgs: []string{"blank"},
			want:     HTML("<I></I>"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv()
			if out := Def(tt.defArgs, env); out != Empty {
				t.Errorf("Def returned %+v, want Empty", out)
			}
			if got := Call(tt.callArgs, env); got != tt.want {
				t.Errorf("Call = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBox(t *testing.T) {
	t.Parallel()

	got := Box([]string{"**bold**"}, newTestEnv())
	if got.Kind != KindHTML {
		t.Fatalf("Kind = %v, want KindHTML", got.Kind)
	}
	want := `<div class="macro-box" style="` + BoxStyle + `"><R>**bold**</R></div>`
	if got.Value != want {
		t.Errorf("Box = %q, want %q", got.Value, want)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	base := Builtins()
	if got := strings.Join(base.Names(), ","); got != "box,call,count,def" {
		t.Errorf("Names = %q", got)
	}

	custom := Registry{"box": func([]string, *Env) Output { return Text("mine") }}
	merged := base.Merge(custom)

	fn, ok := merged.Lookup("box")
	if !ok {
		t.Fatal("box missing after merge")
	}
	if out := fn(nil, newTestEnv()); out.Value != "mine" {
		t.Errorf("merged box = %q, want override", out.Value)
	}
	if _, ok := base.Lookup("nope"); ok {
		t.Error("Lookup found an unregistered name")
	}

	clone := base.Clone()
	delete(clone, "count")
	if _, ok := base.Lookup("count"); !ok {
		t.Error("Clone shares storage with the original")
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	c := NewContext()
	if _, ok := c.Get("k"); ok {
		t.Error("fresh context has a value")
	}
	c.Set("k", 42)
	if v, _ := c.Get("k"); v != 42 {
		t.Errorf("Get = %v, want 42", v)
	}
	c.Incr("n")
	c.Incr("n")
	if c.Counter("n") != 2 {
		t.Errorf("Counter = %d, want 2", c.Counter("n"))
	}
	if _, ok := c.Template("t"); ok {
		t.Error("fresh context has a template")
	}
}
