package integrity

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sealog/sealog/pkg/types"
)

var testKey = bytes.Repeat([]byte{0x42}, MinKeyLength)

func sampleRecord() *types.Record {
	return &types.Record{
		Sequence:  7,
		Level:     types.LevelWarn,
		Timestamp: time.Unix(1700000000, 123456789),
		Message:   "disk nearly full",
		Context:   map[string]interface{}{"disk": "/dev/sda1", "pct": 97},
	}
}

func TestNewTagger_KeyValidation(t *testing.T) {
	for _, n := range []int{0, 1, MinKeyLength - 1} {
		if _, err := NewTagger(bytes.Repeat([]byte{0x01}, n)); !errors.Is(err, ErrKeyTooShort) {
			t.Errorf("%d byte key: expected ErrKeyTooShort, got %v", n, err)
		}
	}
	if _, err := NewTagger(testKey); err != nil {
		t.Errorf("%d byte key rejected: %v", MinKeyLength, err)
	}
	if _, err := NewTagger(bytes.Repeat([]byte{0x01}, 64)); err != nil {
		t.Errorf("64 byte key rejected: %v", err)
	}
}

func TestTagger_Deterministic(t *testing.T) {
	tagger, err := NewTagger(testKey)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}

	first := tagger.Tag(sampleRecord())
	second := tagger.Tag(sampleRecord())
	if !bytes.Equal(first, second) {
		t.Error("same record and key produced different tags")
	}
	if len(first) != 32 {
		t.Errorf("tag length = %d, want 32 (SHA-256)", len(first))
	}
}

func TestTagger_KeyIsCopied(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, MinKeyLength)
	tagger, err := NewTagger(key)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}

	want := tagger.Tag(sampleRecord())
	for i := range key {
		key[i] = 0xFF
	}
	if !bytes.Equal(tagger.Tag(sampleRecord()), want) {
		t.Error("mutating the caller's key slice changed the tag")
	}
}

func TestTagger_Verify(t *testing.T) {
	tagger, err := NewTagger(testKey)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}
	tag := tagger.Tag(sampleRecord())

	if !tagger.Verify(sampleRecord(), tag) {
		t.Fatal("tag does not verify against the unmodified record")
	}

	tampered := []struct {
		name   string
		mutate func(rec *types.Record)
	}{
		{"sequence", func(rec *types.Record) { rec.Sequence++ }},
		{"level", func(rec *types.Record) { rec.Level = types.LevelError }},
		{"timestamp", func(rec *types.Record) { rec.Timestamp = rec.Timestamp.Add(time.Nanosecond) }},
		{"message", func(rec *types.Record) { rec.Message = "disk fine" }},
		{"context value", func(rec *types.Record) { rec.Context["pct"] = 12 }},
		{"context key added", func(rec *types.Record) { rec.Context["extra"] = true }},
		{"context key removed", func(rec *types.Record) { delete(rec.Context, "disk") }},
	}
	for _, tt := range tampered {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			tt.mutate(rec)
			if tagger.Verify(rec, tag) {
				t.Error("tag verified after tampering")
			}
		})
	}
}

func TestTagger_DifferentKeysDisagree(t *testing.T) {
	a, err := NewTagger(testKey)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}
	b, err := NewTagger(bytes.Repeat([]byte{0x43}, MinKeyLength))
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}

	rec := sampleRecord()
	if b.Verify(rec, a.Tag(rec)) {
		t.Error("tag from one key verified under another")
	}
}

func TestTagger_ExcludesExistingTagField(t *testing.T) {
	tagger, err := NewTagger(testKey)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}

	rec := sampleRecord()
	want := tagger.Tag(rec)
	rec.Tag = want
	if !bytes.Equal(tagger.Tag(rec), want) {
		t.Error("attached tag fed back into the tag computation")
	}
}

func TestTagger_UnencodableContextValue(t *testing.T) {
	tagger, err := NewTagger(testKey)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}

	rec := sampleRecord()
	rec.Context["ch"] = make(chan int) // json.Marshal cannot encode this

	first := tagger.Tag(rec)
	second := tagger.Tag(rec)
	if len(first) != 32 || !bytes.Equal(first, second) {
		t.Error("unencodable context value broke deterministic tagging")
	}
}

func TestTagger_Zero(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, MinKeyLength)
	tagger, err := NewTagger(key)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}
	before := tagger.Tag(sampleRecord())

	tagger.Zero()

	// The wiped tagger must no longer reproduce keyed tags.
	if bytes.Equal(tagger.Tag(sampleRecord()), before) {
		t.Error("tagger still produces keyed tags after Zero")
	}
}
