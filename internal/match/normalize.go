package match

import (
	"strings"
	"unicode"
)

// actionWords are leading method-name tokens that carry the verb rather than
// the resource, e.g. "get" in getTask or "fetch" in fetchTask.
var actionWords = map[string]struct{}{
	"get": {}, "fetch": {}, "find": {}, "load": {}, "read": {}, "list": {},
	"add": {}, "create": {}, "new": {}, "post": {}, "save": {},
	"update": {}, "put": {}, "patch": {}, "set": {},
	"delete": {}, "remove": {}, "del": {},
}

// NormalizeIdent lowercases an identifier and drops separators, so that
// getTask, get_task and GET-TASK compare equal.
func NormalizeIdent(s string) string {
	return strings.Join(Tokenize(s), "")
}

// NormalizeIdentWithoutAction is NormalizeIdent with a leading action word
// removed. Identifiers made of a single token are returned unchanged.
func NormalizeIdentWithoutAction(s string) string {
	tokens := Tokenize(s)
	if len(tokens) > 1 {
		if _, ok := actionWords[tokens[0]]; ok {
			tokens = tokens[1:]
		}
	}

	return strings.Join(tokens, "")
}

// NormalizePath lowercases a path, trims surrounding slashes and replaces
// every {variable} with {}, so /Tasks/{id} and /tasks/{taskId}/ compare equal.
func NormalizePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = "{}"
			continue
		}

		segments[i] = strings.ToLower(seg)
	}

	return "/" + strings.Join(segments, "/")
}

// Tokenize splits an identifier on separators and case changes and
// lowercases the parts. "getHTTPResponse" yields get, http, response.
func Tokenize(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.' || r == '/'
}

// startsToken reports a lower-to-upper transition, or the last capital of an
// acronym that is followed by a lowercase letter ("XMLParser" splits before P).
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
