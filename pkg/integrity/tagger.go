// Package integrity computes keyed authentication tags over log records so
// that persisted or transmitted entries can be checked for tampering.
//
// The tag is an HMAC-SHA256 over a canonical byte encoding of the record's
// identifying fields. Tagging is deterministic: the same record and key
// always produce the same tag, so formatted output stays reproducible.
package integrity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sealog/sealog/pkg/types"
)

// MinKeyLength is the minimum accepted secret key length in bytes.
const MinKeyLength = 32

// ErrKeyTooShort is returned when the secret key is shorter than
// MinKeyLength. Key validation happens once, at construction; Tag itself
// never fails.
var ErrKeyTooShort = errors.Errorf("integrity: secret key must be at least %d bytes", MinKeyLength)

// Tagger computes and verifies integrity tags using a secret key supplied at
// construction. The key is copied; the caller may discard its slice. The key
// is never included in errors and never logged.
type Tagger struct {
	key []byte
}

// NewTagger validates the key length and returns a Tagger holding a private
// copy of the key.
func NewTagger(key []byte) (*Tagger, error) {
	if len(key) < MinKeyLength {
		return nil, ErrKeyTooShort
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Tagger{key: k}, nil
}

// Tag computes the HMAC-SHA256 tag over the canonical encoding of
// {sequence, timestamp, level, message, context}.
func (t *Tagger) Tag(rec *types.Record) []byte {
	mac := hmac.New(sha256.New, t.key)
	mac.Write(canonical(rec))
	return mac.Sum(nil)
}

// Verify recomputes the tag for rec and compares it against tag in constant
// time. Returns true when they match.
func (t *Tagger) Verify(rec *types.Record, tag []byte) bool {
	return hmac.Equal(t.Tag(rec), tag)
}

// Zero overwrites the key copy. The Tagger is unusable afterwards; call only
// on logger teardown.
func (t *Tagger) Zero() {
	for i := range t.key {
		t.key[i] = 0
	}
	t.key = t.key[:0]
}

// canonical produces a stable byte encoding of the record's tagged fields.
// Context keys are sorted so that map iteration order cannot change the tag.
// The existing Tag field is deliberately excluded.
func canonical(rec *types.Record) []byte {
	buf := make([]byte, 0, 64+len(rec.Message))
	buf = strconv.AppendUint(buf, rec.Sequence, 10)
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, rec.Timestamp.UnixNano(), 10)
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, int64(rec.Level), 10)
	buf = append(buf, '\n')
	buf = append(buf, rec.Message...)
	buf = append(buf, '\n')
	buf = appendContext(buf, rec.Context)
	return buf
}

// appendContext appends context fields as key=json(value) pairs in key order.
// Values that cannot be marshaled are encoded as a JSON string of their
// fmt representation, so tagging never fails.
func appendContext(buf []byte, fields map[string]interface{}) []byte {
	if len(fields) == 0 {
		return buf
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf = append(buf, k...)
		buf = append(buf, '=')
		v, err := json.Marshal(fields[k])
		if err != nil {
			v, _ = json.Marshal(fmt.Sprintf("%v", fields[k]))
		}
		buf = append(buf, v...)
		buf = append(buf, '\n')
	}
	return buf
}
