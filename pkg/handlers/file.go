package handlers

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// DefaultFileBufferSize is the bufio buffer size for file handlers.
const DefaultFileBufferSize = 32 * 1024

// File appends formatted entries to a log file. A flock advisory lock is
// taken around each write so that multiple processes can share one file
// without interleaving partial lines.
type File struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	lock   *flock.Flock
	path   string
	size   int64
}

// NewFile opens (creating if necessary) the log file at path.
func NewFile(path string) (*File, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, "stat log file")
	}

	return &File{
		file:   file,
		writer: bufio.NewWriterSize(file, DefaultFileBufferSize),
		lock:   flock.New(cleanPath),
		path:   cleanPath,
		size:   info.Size(),
	}, nil
}

// newFileFromConfig builds a file handler from a HandlerSpec config map.
// Options: path (required).
func newFileFromConfig(cfg map[string]interface{}) (*File, error) {
	path := stringOption(cfg, "path", "")
	if path == "" {
		return nil, errors.New("file handler requires a path option")
	}
	return NewFile(path)
}

// Write implements types.Handler. The entry is written and flushed under
// the process lock so each line lands atomically.
func (f *File) Write(entry []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return 0, errors.Wrap(err, "acquire file lock")
	}
	defer func() {
		_ = f.lock.Unlock()
	}()

	n, err := f.writer.Write(entry)
	if err != nil {
		return n, err
	}
	if err := f.writer.Flush(); err != nil {
		return n, err
	}
	f.size += int64(n)
	return n, nil
}

// Flush implements types.Handler.
func (f *File) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writer.Flush()
}

// Close flushes and closes the file.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	if err := f.writer.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := f.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Errorf("close file handler: %v", errs)
	}
	return nil
}

// Name implements types.Handler.
func (f *File) Name() string {
	return "file:" + f.path
}

// Size returns the number of bytes written to the file so far, including
// whatever it contained at open time.
func (f *File) Size() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}
