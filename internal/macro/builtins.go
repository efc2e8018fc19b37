package macro

import (
	"regexp"
	"strconv"
	"strings"
)

// placeholder matches {N} template parameters.
var placeholder = regexp.MustCompile(`\{(\d+)\}`)

// BoxStyle is the inline style of the box macro wrapper.
const BoxStyle = "border:1.5px solid #555; padding:15px; border-radius:8px; background:#fafafa;"

// Builtins returns the stock macros: count, def, call and box.
func Builtins() Registry {
	return Registry{
		"count": Count,
		"def":   Def,
		"call":  Call,
		"box":   Box,
	}
}

// Count bumps the render-wide counter and reports it with its arguments.
func Count(args []string, env *Env) Output {
	n := env.Context.Incr("counter")
	return Text("计数: **" + strconv.Itoa(n) + "** (参数: " + strings.Join(args, ",") + ")")
}

// Def stores a template: @def{name}{body}. It produces no output.
func Def(args []string, env *Env) Output {
	if len(args) < 1 {
		return Empty
	}
	body := ""
	if len(args) > 1 {
		body = args[1]
	}
	env.Context.Define(strings.TrimSpace(args[0]), body)
	return Empty
}

// Call expands a template defined earlier in the same render:
// @call{name}{p0}{p1}. {N} placeholders without a parameter stay as written.
// A one-paragraph template renders inline. An unknown template produces no
// output.
func Call(args []string, env *Env) Output {
	if len(args) < 1 {
		return Empty
	}
	body, ok := env.Context.Template(strings.TrimSpace(args[0]))
	if !ok {
		return Empty
	}
	params := args[1:]
	expanded := placeholder.ReplaceAllStringFunc(body, func(m string) string {
		idx, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || idx >= len(params) {
			return m
		}
		return params[idx]
	})
	return HTML(env.RenderInline(expanded))
}

// Box renders its first argument as Markdown inside a framed block.
func Box(args []string, env *Env) Output {
	content := ""
	if len(args) > 0 {
		content = args[0]
	}
	return HTML(`<div class="macro-box" style="` + BoxStyle + `">` + env.Render(content) + `</div>`)
}
