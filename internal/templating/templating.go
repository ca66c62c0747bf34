// Package templating implements the narrow {field} placeholder substitution
// used by prompts and data bindings.
package templating

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Resolver returns the value for a placeholder name. The second return
// reports whether the name resolved at all.
type Resolver func(name string) (string, bool)

// Expand replaces every {name} placeholder in content using the resolver.
// Unresolved placeholders are left as-is so downstream validation can flag
// them. Substituted values are brace-escaped first so a value can never
// introduce new placeholders.
func Expand(content string, resolve Resolver) string {
	return placeholderRe.ReplaceAllStringFunc(content, func(tok string) string {
		name := tok[1 : len(tok)-1]
		v, ok := resolve(name)
		if !ok {
			return tok
		}
		return Escape(v)
	})
}

// ExpandPrompt replaces every {name} placeholder, substituting the empty
// string for names that do not resolve. Used for generation prompts, where
// a missing context field should degrade to blank rather than leak the
// placeholder into the prose prompt.
func ExpandPrompt(prompt string, resolve Resolver) string {
	return placeholderRe.ReplaceAllStringFunc(prompt, func(tok string) string {
		name := tok[1 : len(tok)-1]
		v, _ := resolve(name)
		return Escape(v)
	})
}

// Substitute replaces every literal {name} occurrence with value.
func Substitute(content, name, value string) string {
	return strings.ReplaceAll(content, "{"+name+"}", Escape(value))
}

// Escape neutralizes braces in a substituted value. Placeholder syntax is
// the only markup this layer owns, so escaping is a straight character
// replacement rather than an encoding scheme.
func Escape(value string) string {
	if !strings.ContainsAny(value, "{}") {
		return value
	}
	value = strings.ReplaceAll(value, "{", "(")
	return strings.ReplaceAll(value, "}", ")")
}

// Placeholders returns the distinct placeholder names in content, in order
// of first appearance.
func Placeholders(content string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
