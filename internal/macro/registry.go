package macro

import "sort"

// OutputKind tells the expansion pass how to treat a macro result.
type OutputKind int

const (
	// KindEmpty removes the invocation from the output.
	KindEmpty OutputKind = iota
	// KindText is Markdown that goes through the whole pipeline again.
	KindText
	// KindHTML is markup inserted verbatim and never rescanned.
	KindHTML
)

// Output is the result of a macro invocation.
type Output struct {
	Kind  OutputKind
	Value string
}

// Empty is the zero Output.
var Empty = Output{}

// Text returns an Output that is parsed again as Markdown.
func Text(markdown string) Output {
	return Output{Kind: KindText, Value: markdown}
}

// HTML returns an Output inserted as raw markup.
func HTML(markup string) Output {
	return Output{Kind: KindHTML, Value: markup}
}

// Env is what a macro body receives besides its arguments.
type Env struct {
	// Context is the state shared by all invocations of the current render.
	Context *Context

	// Depth is the nesting level of this invocation, starting at 1.
	Depth int

	// Render runs the full pipeline on a Markdown document and returns the
	// block-level HTML. Nested invocations count against the depth limit.
	Render func(markdown string) string

	// RenderInline is like Render but unwraps a single paragraph, which suits
	// results embedded in running text.
	RenderInline func(markdown string) string
}

// Func is a macro body.
type Func func(args []string, env *Env) Output

// Registry maps macro names to bodies.
type Registry map[string]Func

// Lookup returns the macro registered under name.
func (r Registry) Lookup(name string) (Func, bool) {
	fn, ok := r[name]
	return fn, ok && fn != nil
}

// Clone returns a shallow copy that later writes to r cannot reach.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of r with every entry of other added, other winning.
func (r Registry) Merge(other Registry) Registry {
	out := r.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Context is the mutable state of a single render. It is not safe for
// concurrent use; one render runs sequentially.
type Context struct {
	values    map[string]any
	counters  map[string]int
	templates map[string]string
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		values:    make(map[string]any),
		counters:  make(map[string]int),
		templates: make(map[string]string),
	}
}

func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

// Incr increments the named counter and returns its new value.
func (c *Context) Incr(key string) int {
	c.counters[key]++
	return c.counters[key]
}

// Counter returns the current value of the named counter.
func (c *Context) Counter(key string) int {
	return c.counters[key]
}

// Define stores a template body under name.
func (c *Context) Define(name, body string) {
	c.templates[name] = body
}

func (c *Context) Template(name string) (string, bool) {
	body, ok := c.templates[name]
	return body, ok
}
