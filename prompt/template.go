// Package prompt fills managed-prompt templates and resolves prompt
// variants into the pieces an invocation needs.
//
// Templates use two placeholder syntaxes, {{name}} and {name}, which may
// appear together in one template. Names are case-sensitive. Placeholders
// with no matching variable stay in the output verbatim, and substituted
// values are never re-scanned for further placeholders.
package prompt

import "strings"

// Fill replaces every {{name}} and {name} placeholder in template with the
// matching value from vars. The scan is a single left-to-right pass:
// replacement text is emitted as-is, so a value containing braces cannot
// trigger another substitution. With empty vars the template is returned
// unchanged.
func Fill(template string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	i := 0
	for i < len(template) {
		if template[i] != '{' {
			next := strings.IndexByte(template[i:], '{')
			if next < 0 {
				b.WriteString(template[i:])
				break
			}
			b.WriteString(template[i : i+next])
			i += next
			continue
		}

		// {{name}} takes precedence so the double syntax never leaves
		// stray braces around a substituted value.
		if i+1 < len(template) && template[i+1] == '{' {
			if close := strings.Index(template[i+2:], "}}"); close >= 0 {
				name := template[i+2 : i+2+close]
				if val, ok := vars[name]; ok {
					b.WriteString(val)
					i += 2 + close + 2
					continue
				}
			}
		}

		if close := strings.IndexByte(template[i+1:], '}'); close >= 0 {
			name := template[i+1 : i+1+close]
			if val, ok := vars[name]; ok {
				b.WriteString(val)
				i += 1 + close + 1
				continue
			}
		}

		b.WriteByte('{')
		i++
	}

	return b.String()
}
