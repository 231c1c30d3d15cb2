package xsdvalue

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"sync/atomic"

	"golang.org/x/crypto/blake2b"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

// HexBinary holds xs:hexBinary values. Text renders uppercase; parsing
// accepts either case.
//
// Hash computes a BLAKE2b digest of the bytes once and caches it until the
// next set. Concurrent Hash calls on a holder that is not being set, such as
// facet and enumeration values of a shared Type, may both compute the
// digest; the cache publishes it atomically.
type HexBinary struct {
	holder
	data   []byte
	digest *digestCache
}

// digestCache is replaced, never cleared, by every setter, so copies of a
// holder that share bytes also share the cache.
type digestCache struct {
	sum atomic.Pointer[[blake2b.Size256]byte]
}

func (h *HexBinary) parse(lexical string, _ NamespaceResolver) *xsderrors.Validation {
	if len(lexical)%2 != 0 {
		return lexicalError(h.typ, lexical, errOddHexLength)
	}
	data, err := hex.DecodeString(lexical)
	if err != nil {
		return lexicalError(h.typ, lexical, err)
	}
	h.data = data
	h.digest = new(digestCache)
	h.isNil = false
	return nil
}

var errOddHexLength = hex.ErrLength

// SetText implements Value.
func (h *HexBinary) SetText(s string) error { return setText(h, s, nil) }

// SetTextNS implements Value.
func (h *HexBinary) SetTextNS(s string, ns NamespaceResolver) error { return setText(h, s, ns) }

// ValidateText implements Value.
func (h *HexBinary) ValidateText(s string, ns NamespaceResolver, sink Sink) {
	validateText(h, s, ns, sink)
}

// SetNil implements Value.
func (h *HexBinary) SetNil() {
	h.isNil = true
	h.data = nil
	h.digest = nil
}

// SetBytes stores a copy of b.
func (h *HexBinary) SetBytes(b []byte) error {
	next := *h
	next.data = bytes.Clone(b)
	if next.data == nil {
		next.data = []byte{}
	}
	next.digest = new(digestCache)
	return commitValue(h, &next)
}

// SetValue accepts byte slices and hexBinary lexical strings.
func (h *HexBinary) SetValue(v any) error {
	switch x := v.(type) {
	case []byte:
		return h.SetBytes(x)
	case string:
		return h.SetText(x)
	}
	return wrongKind(h.typ, v)
}

// BytesValue returns a copy of the bytes.
func (h *HexBinary) BytesValue() ([]byte, error) {
	if h.isNil {
		return nil, ErrNil
	}
	return bytes.Clone(h.data), nil
}

// Text implements Value.
func (h *HexBinary) Text() string {
	if h.isNil {
		return ""
	}
	return strings.ToUpper(hex.EncodeToString(h.data))
}

// Compare implements Value.
func (h *HexBinary) Compare(other Value) (int, bool) { return Compare(h, other) }

// Equal implements Value.
func (h *HexBinary) Equal(other Value) bool { return Equal(h, other) }

// Hash implements Value.
func (h *HexBinary) Hash() uint64 {
	if h.isNil {
		return 0
	}
	c := h.digest
	if c == nil {
		sum := blake2b.Sum256(h.data)
		return binary.BigEndian.Uint64(sum[:8])
	}
	sum := c.sum.Load()
	if sum == nil {
		computed := blake2b.Sum256(h.data)
		sum = &computed
		c.sum.Store(sum)
	}
	return binary.BigEndian.Uint64(sum[:8])
}

func (h *HexBinary) equal(o *HexBinary) bool { return bytes.Equal(h.data, o.data) }

func (h *HexBinary) length() int { return len(h.data) }
