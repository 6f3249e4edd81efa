// Package sink delivers finished documents: to a serial line or any other
// io.Writer, to a file, or to several of these in turn.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pilacorp/go-rdf-proof/errs"
)

// DefaultFile is where File writes when no path is given.
const DefaultFile = "rdf_output.json"

// Sink receives the final document bytes.
type Sink interface {
	Emit(ctx context.Context, doc []byte) error
}

// Writer emits to an io.Writer, such as a serial port.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) Emit(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(errs.KindSink, "sink.Writer", "context done", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.w.Write(doc)
	if err != nil {
		return errs.Wrap(errs.KindSink, "sink.Writer", "write failed", err)
	}
	if n != len(doc) {
		return errs.New(errs.KindSink, "sink.Writer", fmt.Sprintf("short write: %d of %d bytes", n, len(doc)))
	}
	return nil
}

// File emits by replacing the contents of a file.
type File struct {
	path string
	perm os.FileMode
}

// FileOpt configures a File sink.
type FileOpt func(*File)

// WithPerm sets the permission bits of a newly created file.
func WithPerm(perm os.FileMode) FileOpt {
	return func(f *File) {
		f.perm = perm
	}
}

// NewFile returns a File sink writing to path, or DefaultFile when path is
// empty.
func NewFile(path string, opts ...FileOpt) *File {
	if path == "" {
		path = DefaultFile
	}
	f := &File{path: path, perm: 0o644}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the output path.
func (f *File) Path() string {
	return f.path
}

func (f *File) Emit(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(errs.KindSink, "sink.File", "context done", err)
	}
	if err := os.WriteFile(f.path, doc, f.perm); err != nil {
		return errs.Wrap(errs.KindSink, "sink.File", "failed to write "+f.path, err)
	}
	return nil
}

// Multi emits to every sink in order. All sinks are attempted; their errors
// are joined.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, doc []byte) error {
	var failed []error
	for _, s := range m {
		if err := s.Emit(ctx, doc); err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errs.Wrap(errs.KindSink, "sink.Multi", fmt.Sprintf("%d of %d sinks failed", len(failed), len(m)), errors.Join(failed...))
}

// Discard accepts and drops every document.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(context.Context, []byte) error { return nil }
