package features

import (
	"regexp"

	"github.com/pkg/errors"
)

// DefaultRedactionReplacement is the text substituted for matched content.
const DefaultRedactionReplacement = "[REDACTED]"

// defaultPatterns are applied when no explicit patterns are configured.
// Email addresses are masked by default.
var defaultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`),
}

// Redactor masks sensitive content in log messages before they are tagged
// and formatted. Redaction runs in the dispatcher, while it is the sole
// owner of the record, so the integrity tag covers the redacted text.
type Redactor struct {
	patterns    []*regexp.Regexp
	replacement string
}

// NewRedactor compiles the given patterns. With no patterns the default set
// is used. An empty replacement falls back to DefaultRedactionReplacement.
func NewRedactor(patterns []string, replacement string) (*Redactor, error) {
	r := &Redactor{replacement: replacement}
	if r.replacement == "" {
		r.replacement = DefaultRedactionReplacement
	}
	if len(patterns) == 0 {
		r.patterns = defaultPatterns
		return r, nil
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "compile redaction pattern %q", p)
		}
		r.patterns = append(r.patterns, re)
	}
	return r, nil
}

// Redact applies every pattern to the message and returns the masked result.
func (r *Redactor) Redact(message string) string {
	for _, re := range r.patterns {
		message = re.ReplaceAllString(message, r.replacement)
	}
	return message
}
