// Package normalize cleans up noisy payee strings.
//
// It has two independent jobs: extracting a stable merchant pattern from
// payees that embed a per-transaction date, and applying the user's
// ordered renaming rules.
package normalize

import (
	"regexp"
	"strings"

	"github.com/ledgerlight/backend/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
)

// datePattern matches a trailing date-like suffix: DD-MM-YY[YY],
// YYYY-MM-DD or DD/MM/YY[YY], preceded by optional whitespace and
// optional "&" or "/" separators.
var datePattern = regexp.MustCompile(`[\s&/]*(\d{2}-\d{2}-\d{2}(\d{2})?|\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{2}(\d{2})?)\s*$`)

var fold = cases.Fold()

// ExtractPattern strips a trailing date-like suffix from the raw payee.
//
// This is intentionally lossy: it exists to group transactions from the
// same merchant whose payee strings embed a per-transaction date or
// reference. Payees without such a suffix are returned unchanged apart
// from trimming.
func ExtractPattern(payee string) string {
	return strings.TrimSpace(datePattern.ReplaceAllString(payee, ""))
}

// compile builds the case-insensitive regular expression for a rule.
// Non-regex patterns are escaped first so that punctuation in a plain
// text pattern is matched literally.
func compile(rule models.RenameRule) (*regexp.Regexp, error) {
	pattern := rule.Pattern
	if !rule.IsRegex {
		pattern = regexp.QuoteMeta(pattern)
	}

	return regexp.Compile("(?i)" + pattern)
}

// ApplyRules folds all enabled rules over the payee in list order, each
// rule's output feeding the next. A rule whose pattern does not compile
// is skipped, it must never abort the whole pipeline.
func ApplyRules(payee string, rules []models.RenameRule) string {
	result := payee

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}

		re, err := compile(rule)
		if err != nil {
			log.Warn().Err(err).Str("pattern", rule.Pattern).Msg("skipping rule with invalid pattern")
			continue
		}

		result = re.ReplaceAllString(result, rule.Replacement)
	}

	return strings.TrimSpace(result)
}

// HasMatchingRule reports whether any enabled rule matches the raw payee.
// It decides whether creating another rule would duplicate an existing
// one's effect. Plain text rules match on case-insensitive substring
// containment.
func HasMatchingRule(payee string, rules []models.RenameRule) bool {
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}

		if !rule.IsRegex {
			if strings.Contains(fold.String(payee), fold.String(rule.Pattern)) {
				return true
			}
			continue
		}

		re, err := compile(rule)
		if err != nil {
			continue
		}

		if re.MatchString(payee) {
			return true
		}
	}

	return false
}
