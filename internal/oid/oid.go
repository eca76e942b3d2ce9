// Package oid maps algorithm names and object identifiers to the block
// ciphers of package bckey.
package oid

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/akcrypt/akcrypt/internal/bckey"
)

// ErrNotFound is returned by Resolve for unknown names and identifiers.
var ErrNotFound = errors.New("oid: no such algorithm")

// Number of lookups kept in the cache.
const cacheSize = 64

// Entry describes one registered algorithm.
type Entry struct {
	Kind bckey.Kind
	// Name is the canonical name, as returned by Algorithm.Name.
	Name string
	OID  string
	// Aliases are other accepted names.
	Aliases   []string
	BlockSize int
	KeySize   int
}

func (e Entry) matches(s string) bool {
	if s == e.OID || s == strings.ToLower(e.Name) {
		return true
	}
	for _, a := range e.Aliases {
		if s == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// Registry resolves names and OIDs. It is safe for concurrent use.
type Registry struct {
	entries []Entry
	cache   *lru.Cache
}

var aliases = map[bckey.Kind][]string{
	bckey.Magma:      {"gost-magma", "gost28147-2015", "magma64"},
	bckey.Kuznyechik: {"kuznechik", "grasshopper", "gost-kuznyechik"},
	bckey.SM4:        {"sms4"},
}

// New builds a registry of the built-in algorithms.
func New() (*Registry, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	r := &Registry{cache: cache}
	for _, k := range bckey.Kinds() {
		alg, err := bckey.AlgorithmFor(k)
		if err != nil {
			return nil, err
		}
		r.entries = append(r.entries, Entry{
			Kind:      k,
			Name:      alg.Name(),
			OID:       alg.OID(),
			Aliases:   aliases[k],
			BlockSize: alg.BlockSize(),
			KeySize:   alg.KeySize(),
		})
	}
	return r, nil
}

// Lookup returns the entry for a name (case-insensitive) or an OID in
// dotted notation.
func (r *Registry) Lookup(nameOrOID string) (Entry, error) {
	s := strings.ToLower(strings.TrimSpace(nameOrOID))
	if s == "" {
		return Entry{}, fmt.Errorf("%w: empty name", ErrNotFound)
	}
	if v, ok := r.cache.Get(s); ok {
		return v.(Entry), nil
	}
	for _, e := range r.entries {
		if e.matches(s) {
			r.cache.Add(s, e)
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, nameOrOID)
}

// Resolve returns the kind registered under nameOrOID.
func (r *Registry) Resolve(nameOrOID string) (bckey.Kind, error) {
	e, err := r.Lookup(nameOrOID)
	if err != nil {
		return 0, err
	}
	return e.Kind, nil
}

// List returns all entries ordered by name.
func (r *Registry) List() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

var _ bckey.Resolver = (*Registry)(nil)

// Default is the registry of the built-in algorithms.
var Default = mustNew()

func mustNew() *Registry {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve resolves nameOrOID in Default.
func Resolve(nameOrOID string) (bckey.Kind, error) {
	return Default.Resolve(nameOrOID)
}
