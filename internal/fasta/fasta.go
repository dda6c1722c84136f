package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// InitialCapacity is the buffer size a load starts from.
const InitialCapacity = 1024

const readBufSize = 64 << 10

var (
	// ErrNotLoaded is returned by View before any successful Load.
	ErrNotLoaded = errors.New("no sequence loaded")
	// ErrOutOfMemory is returned when growing the buffer would pass the
	// store's byte ceiling. The store is left empty.
	ErrOutOfMemory = errors.New("sequence buffer allocation failed")
)

// Store owns the currently loaded sequence: upper-case, no newlines, no
// header lines. It is not safe for concurrent use.
type Store struct {
	seq     []byte
	id      string
	records int
	loaded  bool
	grows   int

	initCap  int
	maxBytes int
}

// Option configures a Store.
type Option func(*Store)

// WithInitialCapacity overrides InitialCapacity. Values < 1 are ignored.
func WithInitialCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.initCap = n
		}
	}
}

// WithMaxBytes caps the buffer size, initial allocation included; 0
// means no ceiling.
func WithMaxBytes(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{initCap: InitialCapacity}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the current sequence with the contents of path ("-" is
// stdin, gzip input is detected). If path cannot be opened the previous
// sequence is kept; any later failure leaves the store empty.
func (s *Store) Load(path string) error {
	rc, err := Open(path)
	if err != nil {
		logrus.Debugf("fasta: open %s failed: %v", path, err)
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	if err := s.LoadReader(rc); err != nil {
		logrus.Debugf("fasta: load %s failed: %v", path, err)
		return fmt.Errorf("load %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"path":     path,
		"bases":    len(s.seq),
		"capacity": cap(s.seq),
		"grows":    s.grows,
		"records":  s.records,
	}).Debug("sequence loaded")
	return nil
}

// LoadReader is Load for an already opened source. The previous sequence
// is discarded before reading starts.
func (s *Store) LoadReader(r io.Reader) error {
	s.Clear()

	initCap := s.initCap
	if s.maxBytes > 0 {
		initCap = min(initCap, s.maxBytes)
	}
	var (
		buf     = make([]byte, 0, initCap)
		id      string
		records int
		grows   int
		br      = bufio.NewReaderSize(r, readBufSize)
	)
	for {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if len(line) > 0 && line[0] == '>' { // header
			if records == 0 {
				if f := bytes.Fields(line[1:]); len(f) > 0 {
					id = string(f[0])
				}
			}
			records++
		} else {
			line = bytes.TrimRight(line, "\r\n")
			if need := len(buf) + len(line); need > cap(buf) {
				grown, gerr := s.grow(buf, need)
				if gerr != nil {
					return gerr
				}
				buf = grown
				grows++
			}
			buf = append(buf, line...)
		}
		if err == io.EOF {
			break
		}
	}
	toUpper(buf)

	s.seq, s.id, s.records, s.grows = buf, id, records, grows
	s.loaded = true
	return nil
}

// grow reallocates to twice the required size, clipped to the ceiling.
func (s *Store) grow(buf []byte, need int) ([]byte, error) {
	newCap := need * 2
	if s.maxBytes > 0 {
		if need > s.maxBytes {
			return nil, ErrOutOfMemory
		}
		if newCap > s.maxBytes {
			newCap = s.maxBytes
		}
	}
	out := make([]byte, len(buf), newCap)
	copy(out, buf)
	return out, nil
}

func toUpper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

// Clear drops the sequence. Safe to call repeatedly.
func (s *Store) Clear() {
	s.seq = nil
	s.id = ""
	s.records = 0
	s.grows = 0
	s.loaded = false
}

// View returns the loaded sequence. The slice is borrowed: do not modify
// it, and do not keep it across the next Load or Clear.
func (s *Store) View() ([]byte, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.seq[:len(s.seq):len(s.seq)], nil
}

func (s *Store) Loaded() bool { return s.loaded }

func (s *Store) Len() int { return len(s.seq) }

// Cap is the current buffer capacity.
func (s *Store) Cap() int { return cap(s.seq) }

// Grows is the number of reallocations made by the last load.
func (s *Store) Grows() int { return s.grows }

// ID is the first header's identifier, up to the first space.
func (s *Store) ID() string { return s.id }

// Records counts the header lines seen by the last load.
func (s *Store) Records() int { return s.records }
