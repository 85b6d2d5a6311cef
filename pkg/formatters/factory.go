package formatters

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/sealog/sealog/pkg/types"
)

// Format names accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns the built-in formatter for the given name. An empty name
// selects text, the engine default.
func New(name string) (types.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatText:
		return NewText(), nil
	case FormatJSON:
		return NewJSON(), nil
	default:
		return nil, errors.Errorf("unknown formatter %q", name)
	}
}
