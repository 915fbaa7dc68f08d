// Package textstyle turns the engine's inline markup into HTML fragments and
// derives CSS class names from nids.
package textstyle

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	lineBreak     = "<br/>"
	emptyRedGroup = ` (<span class="color-red"></span>)`
)

// Render converts a raw description into HTML.
//
// Grammar, applied left to right in a single scan:
//
//	<tag>content</>  → <span class="color-tag">content</span>
//	<icon>Name</>    → <span class="Name-subIcon"></span>
//	{e:...}          → removed
//	\n               → <br/>
//
// Spans never cross a newline. An empty red span wrapped in parentheses is
// removed afterwards, then {br} markers become line breaks.
func Render(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + 16)
	for i := 0; i < len(raw); {
		switch raw[i] {
		case '<':
			if out, n, ok := scanTag(raw[i:]); ok {
				b.WriteString(out)
				i += n
				continue
			}
		case '{':
			if n, ok := scanEscape(raw[i:]); ok {
				i += n
				continue
			}
		case '\n':
			b.WriteString(lineBreak)
			i++
			continue
		}
		b.WriteByte(raw[i])
		i++
	}
	out := strings.ReplaceAll(b.String(), emptyRedGroup, "")
	return strings.ReplaceAll(out, "{br}", lineBreak)
}

// scanTag matches `<tag>content</>` at the start of s and returns the
// replacement and the number of bytes consumed.
func scanTag(s string) (string, int, bool) {
	line := s
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		line = s[:nl]
	}
	gt := strings.IndexByte(line[1:], '>')
	if gt < 0 {
		return "", 0, false
	}
	gt++
	end := strings.Index(line[gt+1:], "</>")
	if end < 0 {
		return "", 0, false
	}
	tag := line[1:gt]
	content := line[gt+1 : gt+1+end]
	n := gt + 1 + end + len("</>")

	if tag == "" || content == "" {
		return "", n, true
	}
	if tag == "icon" {
		return `<span class="` + ClassName(strings.TrimSpace(content)) + `-subIcon"></span>`, n, true
	}
	return `<span class="color-` + tag + `">` + stripEscapes(content) + `</span>`, n, true
}

// scanEscape matches `{e:...}` at the start of s.
func scanEscape(s string) (int, bool) {
	if !strings.HasPrefix(s, "{e:") {
		return 0, false
	}
	for j := 3; j < len(s); j++ {
		switch s[j] {
		case '\n':
			return 0, false
		case '}':
			return j + 1, true
		}
	}
	return 0, false
}

func stripEscapes(s string) string {
	if !strings.Contains(s, "{e:") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if n, ok := scanEscape(s[i:]); ok {
			i += n
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// ClassName sanitizes s into a CSS class: keeps letters, digits, space,
// underscore and hyphen; underscores become hyphens, spaces separate words;
// each word is capitalized and words are joined with "-". A result that does
// not start with a letter gets an "xx" prefix.
func ClassName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '_':
			b.WriteByte('-')
		case r == ' ':
			b.WriteByte('_')
		case r == '-', unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned != "" {
		first := []rune(cleaned)[0]
		if !unicode.IsLetter(first) {
			cleaned = "xx" + cleaned
		}
	}
	parts := strings.Split(cleaned, "_")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, "-")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(strings.ToLower(s))
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}

// IconClass builds "{nid}-{kind}-icon {icon}-icon", or "" when icon is empty.
func IconClass(nid, kind, icon string) string {
	if icon == "" {
		return ""
	}
	return strings.TrimSpace(ClassName(nid) + "-" + kind + "-icon " + ClassName(icon) + "-icon")
}

var (
	inlineTagRe   = regexp.MustCompile(`(?s)<\w+[^>]*>.*?((</\w+>)|/>)`)
	emptyGroupRe  = regexp.MustCompile(`\([ \t\r\n]*\)|\s*\[[ \t\r\n]*\]|\s*\{[ \t\r\n]*\}`)
	digitRunRe    = regexp.MustCompile(`\d+`)
	tierMarkRe    = regexp.MustCompile(`T\d`)
	camelBoundary = regexp.MustCompile(`[A-Z]`)
)

// StripInlineTags removes markup elements from a display name, then any
// brackets left empty by the removal.
func StripInlineTags(name string) string {
	out := inlineTagRe.ReplaceAllString(name, "")
	return emptyGroupRe.ReplaceAllString(out, "")
}

// PadDigits left-pads every run of digits in s with zeros to width.
func PadDigits(s string, width int) string {
	return digitRunRe.ReplaceAllStringFunc(s, func(d string) string {
		if len(d) >= width {
			return d
		}
		return strings.Repeat("0", width-len(d)) + d
	})
}

// Title upper-cases the first letter of each word and lower-cases the rest.
func Title(s string) string {
	// a Caser holds state, so each call gets its own
	return cases.Title(language.Und).String(s)
}

// SplitCamel inserts a space before every upper-case ASCII letter except a
// leading one: "PortKiris" → "Port Kiris".
func SplitCamel(s string) string {
	out := camelBoundary.ReplaceAllStringFunc(s, func(u string) string { return " " + u })
	return strings.TrimPrefix(out, " ")
}

// AltName derives a class's secondary label from its nid, e.g. nid
// "Eirika_Lord_T2" with name "Lord" yields "Eirika". Empty when nid == name.
func AltName(name, nid string) string {
	if nid == name {
		return ""
	}
	alt := strings.ReplaceAll(nid, "_", " ")
	alt = tierMarkRe.ReplaceAllString(alt, "")
	alt = strings.ReplaceAll(alt, "Leg ", "")
	alt = strings.ReplaceAll(alt, name, "")
	return strings.TrimSpace(alt)
}
