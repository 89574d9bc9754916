package search

// expandTemplate produces the replacement text for one regex match.
//
// template syntax: backslash escapes (\n newline, \t tab, any other escaped
// character is itself) and $N capture group references. The digit sequence
// after $ is extended greedily while it still names a group the pattern
// defines, so with twelve groups "$12" is group 12, but with five it is
// group 1 followed by a literal "2". A leading group number the pattern does
// not define is a GroupError. A group that did not participate in the match
// substitutes as empty. A $ not followed by a digit is literal.
//
// locs are submatch indices into text as returned by the regexp package,
// with -1 marking non-participating groups.
func expandTemplate(template, text string, locs []int, groupCount int) (string, error) {
	var out []byte

	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '\\':
			if i+1 >= len(template) {
				out = append(out, '\\')
				break
			}
			i++
			switch template[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, template[i])
			}

		case '$':
			if i+1 >= len(template) || !isDigit(template[i+1]) {
				out = append(out, '$')
				break
			}
			i++
			group := int(template[i] - '0')
			if group > groupCount {
				return "", &GroupError{Group: group}
			}
			for i+1 < len(template) && isDigit(template[i+1]) {
				wider := group*10 + int(template[i+1]-'0')
				if wider > groupCount {
					break
				}
				group = wider
				i++
			}
			if start := locs[2*group]; start >= 0 {
				out = append(out, text[start:locs[2*group+1]]...)
			}

		default:
			out = append(out, template[i])
		}
	}

	return string(out), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
