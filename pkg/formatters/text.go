// Package formatters renders records to bytes. Two formats are built in:
// line-oriented text and line-delimited JSON. Formatters are pure functions
// of the record; identical records produce byte-identical output.
package formatters

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sealog/sealog/pkg/types"
)

// TimestampFormat is the layout used for rendered timestamps.
const TimestampFormat = time.RFC3339Nano

// Text formats records as a single line:
//
//	[timestamp] [LEVEL] message key=value ... tag=hex
//
// Context fields are rendered in sorted key order so the output is
// deterministic regardless of map iteration order.
type Text struct{}

// NewText returns the text formatter.
func NewText() *Text {
	return &Text{}
}

// Format implements types.Formatter.
func (f *Text) Format(rec *types.Record) ([]byte, error) {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(rec.Timestamp.Format(TimestampFormat))
	b.WriteString("] [")
	b.WriteString(types.LevelName(rec.Level))
	b.WriteString("] ")
	b.WriteString(rec.Message)

	if len(rec.Context) > 0 {
		keys := make([]string, 0, len(rec.Context))
		for k := range rec.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString("=")
			fmt.Fprintf(&b, "%v", rec.Context[k])
		}
	}

	if len(rec.Tag) > 0 {
		b.WriteString(" tag=")
		b.WriteString(hex.EncodeToString(rec.Tag))
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}
