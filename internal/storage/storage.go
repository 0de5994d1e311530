// Package storage holds the process-wide scan sessions: ordered sequences
// of captured page images keyed by session identifier. Sessions are created
// on first append and live for the process lifetime; there is no eviction.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"sync"
)

var (
	// ErrSessionNotFound reports an unknown session identifier.
	ErrSessionNotFound = errors.New("scan session not found")
	// ErrPageOutOfRange reports a page index outside [0, pageCount).
	ErrPageOutOfRange = errors.New("page index out of range")
)

// jpegQuality is used for the exchange encoding served to clients.
const jpegQuality = 90

// session owns the ordered page sequence for one scan id. Its mutex
// serializes appends and reads for that id, so concurrent captures against
// the same session land in a deterministic order.
type session struct {
	mu    sync.Mutex
	pages []image.Image
}

// SessionStore is an explicit registry injected into the request-handling
// layer. Safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// New constructs an empty session store.
func New() *SessionStore {
	return &SessionStore{sessions: make(map[string]*session)}
}

// Append adds a captured page to the session, creating the session if this
// is its first page, and returns the new page count. Appends never fail.
func (s *SessionStore) Append(scanID string, img image.Image) int {
	s.mu.Lock()
	sess, ok := s.sessions[scanID]
	if !ok {
		sess = &session{}
		s.sessions[scanID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.pages = append(sess.pages, img)
	return len(sess.pages)
}

// PageCount returns the number of pages recorded for the session.
func (s *SessionStore) PageCount(scanID string) (int, error) {
	sess, err := s.lookup(scanID)
	if err != nil {
		return 0, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.pages), nil
}

// Page returns the raster image at the given zero-based index.
func (s *SessionStore) Page(scanID string, index int) (image.Image, error) {
	sess, err := s.lookup(scanID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if index < 0 || index >= len(sess.pages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, len(sess.pages))
	}
	return sess.pages[index], nil
}

// EncodePage serves the page at index re-encoded as JPEG. Every call
// re-encodes from the stored raster; encoded bytes are never cached.
func (s *SessionStore) EncodePage(scanID string, index int) ([]byte, error) {
	img, err := s.Page(scanID, index)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode page %d: %w", index, err)
	}
	return buf.Bytes(), nil
}

// Pages returns a snapshot of the session's page sequence in capture order.
// The slice is a copy; the images are shared, borrowed references.
func (s *SessionStore) Pages(scanID string) ([]image.Image, error) {
	sess, err := s.lookup(scanID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]image.Image, len(sess.pages))
	copy(out, sess.pages)
	return out, nil
}

func (s *SessionStore) lookup(scanID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[scanID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, scanID)
	}
	return sess, nil
}
