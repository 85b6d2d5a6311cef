package formatters

import (
	"encoding/hex"
	"encoding/json"

	"github.com/sealog/sealog/pkg/types"
)

// JSON formats records as line-delimited JSON objects. Field order is fixed
// by the struct layout and map keys are emitted sorted by encoding/json, so
// formatting the same record twice yields identical bytes.
type JSON struct{}

// NewJSON returns the JSON formatter.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Sequence  uint64                 `json:"sequence"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Tag       string                 `json:"tag,omitempty"`
}

// Format implements types.Formatter.
func (f *JSON) Format(rec *types.Record) ([]byte, error) {
	entry := jsonEntry{
		Timestamp: rec.Timestamp.Format(TimestampFormat),
		Level:     types.LevelName(rec.Level),
		Sequence:  rec.Sequence,
		Message:   rec.Message,
		Context:   rec.Context,
	}
	if len(rec.Tag) > 0 {
		entry.Tag = hex.EncodeToString(rec.Tag)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
