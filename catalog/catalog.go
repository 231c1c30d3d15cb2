// Package catalog loads named simple-type declarations from YAML and
// builds them into xsdvalue types.
//
// A catalog document lists namespace bindings and type declarations:
//
//	namespaces:
//	  img: urn:images
//	types:
//	  - name: percent
//	    base: int
//	    facets:
//	      minInclusive: 1
//	      maxInclusive: 100
//	  - name: color
//	    base: token
//	    enumeration: [red, green, blue]
//	  - name: sizeOrColor
//	    union: [percent, color]
//
// Bases and union members name builtins ("int" or "xs:int") or other
// declarations of the same catalog, in any order.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jacoelho/xsdvalue"
)

// ErrCycle is wrapped when declarations derive from each other.
var ErrCycle = errors.New("type derivation cycle")

// Document is the YAML shape of a catalog.
type Document struct {
	Namespaces map[string]string `yaml:"namespaces"`
	Types      []Declaration     `yaml:"types"`
}

// Declaration declares one named type, either a restriction of Base or a
// union of Union members.
type Declaration struct {
	Facets      map[string]string `yaml:"facets"`
	Name        string            `yaml:"name"`
	Base        string            `yaml:"base"`
	WhiteSpace  string            `yaml:"whiteSpace"`
	Enumeration []string          `yaml:"enumeration"`
	Patterns    []string          `yaml:"patterns"`
	Union       []string          `yaml:"union"`
}

// Catalog is a set of built types. It is immutable and safe for concurrent
// use.
type Catalog struct {
	types      map[string]*xsdvalue.Type
	namespaces xsdvalue.Namespaces
	names      []string
}

// Option configures loading.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger used while building types.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// LoadFile reads and builds the catalog at path.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, opts...)
}

// Load reads and builds a catalog from r.
func Load(r io.Reader, opts ...Option) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, opts...)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return Build(doc, opts...)
}

// Build turns a decoded document into a catalog.
func Build(doc Document, opts ...Option) (*Catalog, error) {
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	b := builder{
		logger: cfg.logger,
		decls:  make(map[string]*Declaration, len(doc.Types)),
		built:  make(map[string]*xsdvalue.Type, len(doc.Types)),
		active: make(map[string]bool),
		ns:     xsdvalue.Namespaces(doc.Namespaces),
	}
	names := make([]string, 0, len(doc.Types))
	for i := range doc.Types {
		d := &doc.Types[i]
		if d.Name == "" {
			return nil, fmt.Errorf("type %d: missing name", i)
		}
		if _, dup := b.decls[d.Name]; dup {
			return nil, fmt.Errorf("type %q: declared more than once", d.Name)
		}
		b.decls[d.Name] = d
		names = append(names, d.Name)
	}
	for _, name := range names {
		if _, err := b.resolve(name); err != nil {
			return nil, err
		}
	}
	return &Catalog{types: b.built, namespaces: b.ns, names: names}, nil
}

// Type looks a type up by catalog name or builtin name. Builtins may carry
// the xs: prefix.
func (c *Catalog) Type(name string) (*xsdvalue.Type, bool) {
	if t, ok := c.types[name]; ok {
		return t, true
	}
	t := xsdvalue.Builtin(strings.TrimPrefix(name, "xs:"))
	return t, t != nil
}

// Names returns the declared names in document order.
func (c *Catalog) Names() []string { return slices.Clone(c.names) }

// Len returns the number of declared types.
func (c *Catalog) Len() int { return len(c.names) }

// Namespaces returns the namespace bindings of the document.
func (c *Catalog) Namespaces() xsdvalue.Namespaces { return c.namespaces }

type builder struct {
	logger *slog.Logger
	decls  map[string]*Declaration
	built  map[string]*xsdvalue.Type
	active map[string]bool
	ns     xsdvalue.Namespaces
	stack  []string
}

func (b *builder) lookup(name string) (*xsdvalue.Type, error) {
	if _, ok := b.decls[name]; ok {
		return b.resolve(name)
	}
	if t := xsdvalue.Builtin(strings.TrimPrefix(name, "xs:")); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

func (b *builder) resolve(name string) (*xsdvalue.Type, error) {
	if t, ok := b.built[name]; ok {
		return t, nil
	}
	if b.active[name] {
		return nil, fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(b.stack, " -> "), name)
	}
	b.active[name] = true
	b.stack = append(b.stack, name)
	defer func() {
		delete(b.active, name)
		b.stack = b.stack[:len(b.stack)-1]
	}()

	d := b.decls[name]
	t, err := b.build(d)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", name, err)
	}
	b.built[name] = t
	b.logger.Debug("built type",
		"name", name,
		"family", t.Family().String(),
		"base", baseName(t))
	return t, nil
}

func baseName(t *xsdvalue.Type) string {
	if t.Base() == nil {
		return ""
	}
	return t.Base().String()
}

func (b *builder) build(d *Declaration) (*xsdvalue.Type, error) {
	switch {
	case d.Base != "" && len(d.Union) > 0:
		return nil, errors.New("base and union are mutually exclusive")
	case len(d.Union) > 0:
		return b.buildUnion(d)
	case d.Base != "":
		base, err := b.lookup(d.Base)
		if err != nil {
			return nil, err
		}
		opts, err := b.facetOptions(d)
		if err != nil {
			return nil, err
		}
		return xsdvalue.Restrict(d.Name, base, opts...)
	default:
		return nil, errors.New("either base or union is required")
	}
}

func (b *builder) buildUnion(d *Declaration) (*xsdvalue.Type, error) {
	members := make([]*xsdvalue.Type, 0, len(d.Union))
	for _, m := range d.Union {
		t, err := b.lookup(m)
		if err != nil {
			return nil, err
		}
		members = append(members, t)
	}
	opts, err := b.facetOptions(d)
	if err != nil {
		return nil, err
	}
	return xsdvalue.NewUnion(d.Name, members, opts...)
}

func (b *builder) facetOptions(d *Declaration) ([]xsdvalue.FacetOption, error) {
	opts := []xsdvalue.FacetOption{xsdvalue.FacetNamespaces(b.ns)}
	keys := make([]string, 0, len(d.Facets))
	for k := range d.Facets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		opt, err := facetOption(key, d.Facets[key])
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	if d.WhiteSpace != "" {
		ws, err := parseWhiteSpace(d.WhiteSpace)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xsdvalue.WhiteSpaceRule(ws))
	}
	if len(d.Patterns) > 0 {
		opts = append(opts, xsdvalue.PatternFacet(d.Patterns...))
	}
	if d.Enumeration != nil {
		opts = append(opts, xsdvalue.Enumeration(d.Enumeration...))
	}
	return opts, nil
}

func facetOption(key, val string) (xsdvalue.FacetOption, error) {
	kind, ok := xsdvalue.FacetKindByName(key)
	if !ok {
		return nil, fmt.Errorf("unknown facet %q", key)
	}
	switch kind {
	case xsdvalue.FacetMinInclusive:
		return xsdvalue.MinInclusive(val), nil
	case xsdvalue.FacetMinExclusive:
		return xsdvalue.MinExclusive(val), nil
	case xsdvalue.FacetMaxInclusive:
		return xsdvalue.MaxInclusive(val), nil
	case xsdvalue.FacetMaxExclusive:
		return xsdvalue.MaxExclusive(val), nil
	case xsdvalue.FacetLength, xsdvalue.FacetMinLength, xsdvalue.FacetMaxLength,
		xsdvalue.FacetTotalDigits, xsdvalue.FacetFractionDigits:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("facet %s: %w", key, err)
		}
		return lengthOption(kind, n), nil
	case xsdvalue.FacetWhiteSpace:
		ws, err := parseWhiteSpace(val)
		if err != nil {
			return nil, err
		}
		return xsdvalue.WhiteSpaceRule(ws), nil
	}
	return nil, fmt.Errorf("facet %s must be declared as a list", key)
}

func lengthOption(kind xsdvalue.FacetKind, n int) xsdvalue.FacetOption {
	switch kind {
	case xsdvalue.FacetLength:
		return xsdvalue.Length(n)
	case xsdvalue.FacetMinLength:
		return xsdvalue.MinLength(n)
	case xsdvalue.FacetMaxLength:
		return xsdvalue.MaxLength(n)
	case xsdvalue.FacetTotalDigits:
		return xsdvalue.TotalDigits(n)
	default:
		return xsdvalue.FractionDigits(n)
	}
}

func parseWhiteSpace(s string) (xsdvalue.WhiteSpace, error) {
	switch s {
	case "preserve":
		return xsdvalue.WhiteSpacePreserve, nil
	case "replace":
		return xsdvalue.WhiteSpaceReplace, nil
	case "collapse":
		return xsdvalue.WhiteSpaceCollapse, nil
	}
	return 0, fmt.Errorf("unknown whiteSpace %q", s)
}
