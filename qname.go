package xsdvalue

import (
	"encoding/xml"

	"github.com/cespare/xxhash/v2"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
	"github.com/jacoelho/xsdvalue/internal/value"
)

// QName holds xs:QName and xs:NOTATION values. The value is the
// (namespace, local) pair; the prefix seen while parsing is kept only as a
// rendering hint.
type QName struct {
	holder
	name   xml.Name
	prefix string
}

func (q *QName) parse(lexical string, ns NamespaceResolver) *xsderrors.Validation {
	prefix, local, err := value.SplitQName(lexical)
	if err != nil {
		return lexicalError(q.typ, lexical, err)
	}
	uri, ok := resolveNamespace(ns, prefix)
	if !ok {
		v := xsderrors.NewValidationf(xsderrors.ErrQNamePrefixUnresolved, xsderrors.KindResolution,
			"prefix '%s' of '%s' is not bound to a namespace for %s", prefix, lexical, q.typ)
		v.Actual = lexical
		return v
	}
	q.name = xml.Name{Space: uri, Local: local}
	q.prefix = prefix
	q.isNil = false
	return nil
}

// SetText implements Value. Prefixed text fails without a resolver; only
// the xml prefix is bound implicitly.
func (q *QName) SetText(s string) error { return setText(q, s, nil) }

// SetTextNS implements Value.
func (q *QName) SetTextNS(s string, ns NamespaceResolver) error { return setText(q, s, ns) }

// ValidateText implements Value.
func (q *QName) ValidateText(s string, ns NamespaceResolver, sink Sink) {
	validateText(q, s, ns, sink)
}

// SetNil implements Value.
func (q *QName) SetNil() {
	q.isNil = true
	q.name = xml.Name{}
	q.prefix = ""
}

// SetName stores n. The local part must be an NCName.
func (q *QName) SetName(n xml.Name) error {
	if err := value.ValidateNCName(n.Local); err != nil {
		return lexicalError(q.typ, n.Local, err)
	}
	next := *q
	next.name = n
	next.prefix = ""
	return commitValue(q, &next)
}

// SetValue accepts xml.Name and QName lexical strings.
func (q *QName) SetValue(v any) error {
	switch x := v.(type) {
	case xml.Name:
		return q.SetName(x)
	case string:
		return q.SetText(x)
	}
	return wrongKind(q.typ, v)
}

// QNameValue returns the (namespace, local) pair.
func (q *QName) QNameValue() (xml.Name, error) {
	if q.isNil {
		return xml.Name{}, ErrNil
	}
	return q.name, nil
}

// Text implements Value. Without a PrefixResolver the parsed prefix is
// reused, or one is derived from the namespace URI.
func (q *QName) Text() string { return q.TextNS(nil) }

// TextNS renders the value, asking p for the prefix of the namespace first.
func (q *QName) TextNS(p PrefixResolver) string {
	if q.isNil {
		return ""
	}
	if q.name.Space == "" {
		return q.name.Local
	}
	if p != nil {
		if prefix, ok := p.Prefix(q.name.Space); ok {
			if prefix == "" {
				return q.name.Local
			}
			return prefix + ":" + q.name.Local
		}
	}
	prefix := q.prefix
	if prefix == "" {
		prefix = inventPrefix(q.name.Space)
	}
	return prefix + ":" + q.name.Local
}

// Compare implements Value.
func (q *QName) Compare(other Value) (int, bool) { return Compare(q, other) }

// Equal implements Value.
func (q *QName) Equal(other Value) bool { return Equal(q, other) }

// Hash implements Value.
func (q *QName) Hash() uint64 {
	if q.isNil {
		return 0
	}
	return xxhash.Sum64String(q.name.Space + "\x00" + q.name.Local)
}

func (q *QName) length() int { return runeLength(q.Text()) }
