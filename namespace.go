package xsdvalue

import (
	"slices"
	"strings"
)

const (
	// XSDNamespace is the XML Schema namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema"
	// XSINamespace is the XML Schema instance namespace.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
	// XMLNamespace is bound to the xml prefix by definition.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
)

// NamespaceResolver maps prefixes to namespace URIs while parsing QName and
// NOTATION text. The empty prefix is the default namespace.
type NamespaceResolver interface {
	NamespaceURI(prefix string) (string, bool)
}

// PrefixResolver maps namespace URIs back to prefixes when rendering QName
// and NOTATION text.
type PrefixResolver interface {
	Prefix(uri string) (string, bool)
}

// Namespaces is a prefix to URI map implementing both resolver directions.
type Namespaces map[string]string

// NamespaceURI implements NamespaceResolver.
func (n Namespaces) NamespaceURI(prefix string) (string, bool) {
	uri, ok := n[prefix]
	return uri, ok
}

// Prefix implements PrefixResolver. When several prefixes are bound to uri
// the lexically smallest wins.
func (n Namespaces) Prefix(uri string) (string, bool) {
	var found []string
	for p, u := range n {
		if u == uri {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	return slices.Min(found), true
}

func resolveNamespace(ns NamespaceResolver, prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNamespace, true
	}
	if ns == nil {
		return "", prefix == ""
	}
	uri, ok := ns.NamespaceURI(prefix)
	if !ok && prefix == "" {
		return "", true
	}
	return uri, ok
}

// inventPrefix derives a display prefix from a namespace URI when neither a
// PrefixResolver nor a parsed prefix is available.
func inventPrefix(uri string) string {
	switch uri {
	case XMLNamespace:
		return "xml"
	case XSDNamespace:
		return "xs"
	case XSINamespace:
		return "xsi"
	}
	seg := strings.TrimRight(uri, "/#")
	if i := strings.LastIndexAny(seg, "/:#"); i >= 0 {
		seg = seg[i+1:]
	}
	var b strings.Builder
letters:
	for i := 0; i < len(seg) && b.Len() < 8; i++ {
		c := seg[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		default:
			break letters
		}
	}
	p := b.String()
	if p == "" || strings.HasPrefix(p, "xml") {
		return "ns"
	}
	return p
}
