package script

import "strings"

// kwPrefix marks keyword arguments after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource rewrites script text into something zygomys accepts:
//
//   - :cells becomes the string "__kw_cells", so builtins can tell keyword
//     arguments from positional ones without global keyword symbols.
//   - mark-creases becomes mark_creases; zygomys reads a hyphen inside a
//     symbol as subtraction.
//   - ; comments become // comments.
//
// String literals are copied through untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '"':
			i = copyQuoted(&out, source, i, '"', true)
		case c == '`':
			i = copyQuoted(&out, source, i, '`', false)
		case c == ';':
			out.WriteString("//")
			for i < len(source) && source[i] == ';' {
				i++
			}
			for i < len(source) && source[i] != '\n' {
				out.WriteByte(source[i])
				i++
			}
		case c == ':' && i+1 < len(source) && source[i+1] == '=':
			out.WriteString(":=")
			i += 2
		case c == ':' && i+1 < len(source) && isLetter(source[i+1]):
			j := i + 1
			for j < len(source) && isKeywordChar(source[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.WriteString(source[i+1 : j])
			out.WriteByte('"')
			i = j
		case c == '-' && i > 0 && i+1 < len(source) &&
			isSymbolChar(source[i-1]) && isLetter(source[i+1]):
			out.WriteByte('_')
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// copyQuoted copies the literal starting at source[i] and returns the index
// just past its closing quote.
func copyQuoted(out *strings.Builder, source string, i int, quote byte, escapes bool) int {
	out.WriteByte(source[i])
	i++
	for i < len(source) && source[i] != quote {
		if escapes && source[i] == '\\' && i+1 < len(source) {
			out.WriteString(source[i : i+2])
			i += 2
			continue
		}
		out.WriteByte(source[i])
		i++
	}
	if i < len(source) {
		out.WriteByte(source[i])
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isKeywordChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isSymbolChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
