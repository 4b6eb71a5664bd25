package odml

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/g-node/odml-go/pkg/logging"
)

// nameStyle requires a leading ASCII letter.
var nameStyle = regexp.MustCompile(`^[a-zA-Z].*`)

// CheckNameStyle normalizes a property name: surrounding whitespace is
// trimmed, internal blanks are collapsed into CamelCase, and names that
// do not start with a letter get a "P_" prefix. The function is applied
// at explicit call sites, never implicitly on mutation.
func CheckNameStyle(name string) string {
	name = strings.TrimSpace(name)
	for idx := strings.Index(name, " "); idx >= 0; idx = strings.Index(name, " ") {
		rest := name[idx+1:]
		r, size := utf8.DecodeRuneInString(rest)
		name = name[:idx] + string(unicode.ToUpper(r)) + rest[size:]
		logging.Warn().Str("name", name).
			Msg("invalid property name: generating CamelCase by removing blanks")
	}
	if !nameStyle.MatchString(name) {
		name = "P_" + name
		logging.Warn().Str("name", name).
			Msg("invalid property name: 'P_' added as no leading letter found")
	}
	return name
}
