package handlers

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/sealog/sealog/pkg/types"
)

// Built-in handler kind names.
const (
	KindConsole = "console"
	KindFile    = "file"
	KindNetwork = "network"
	KindNATS    = "nats"
	KindMemory  = "memory"
)

// ErrUnknownKind is returned for kinds that are neither built in nor
// resolvable through a plugin registry.
var ErrUnknownKind = errors.New("unknown handler kind")

// New constructs a built-in handler for the given kind from its opaque
// config map. Unknown kinds return ErrUnknownKind so the caller can fall
// back to the plugin registry.
func New(kind string, cfg map[string]interface{}) (types.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindConsole:
		return newConsoleFromConfig(cfg), nil
	case KindFile:
		return newFileFromConfig(cfg)
	case KindNetwork:
		return newNetworkFromConfig(cfg)
	case KindNATS:
		return newNATSFromConfig(cfg)
	case KindMemory:
		return newMemoryFromConfig(cfg), nil
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
}
