package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

const exemptionSeparator = "::"

// ExemptionKey formats an allow-list key
func ExemptionKey(fileName, method string) string {
	return fileName + exemptionSeparator + method
}

// ParseExemption splits "<fileBaseName>::<methodName>" entry
func ParseExemption(entry string) (string, string, error) {
	fileName, method, ok := strings.Cut(entry, exemptionSeparator)
	switch {
	case !ok:
		return "", "", fmt.Errorf("%w: %q: missing %q separator", ErrInvalidExemption, entry, exemptionSeparator)
	case fileName == "" || method == "":
		return "", "", fmt.Errorf("%w: %q: empty file or method name", ErrInvalidExemption, entry)
	case strings.ContainsAny(fileName, `/\`):
		return "", "", fmt.Errorf("%w: %q: expected file base name", ErrInvalidExemption, entry)
	case strings.Contains(method, exemptionSeparator):
		return "", "", fmt.Errorf("%w: %q: too many %q separators", ErrInvalidExemption, entry, exemptionSeparator)
	}
	return fileName, method, nil
}

// Exemptions is an append-only set of functions allowed to exceed the nesting warning level.
// It is safe for concurrent use; an entry once registered is visible to every later lookup.
type Exemptions struct {
	mux     sync.RWMutex
	keys    map[string]struct{}
	version uint64
}

// NewExemptions creates exemptions, entries are validated with ParseExemption
func NewExemptions(entries ...string) (*Exemptions, error) {
	ret := &Exemptions{keys: map[string]struct{}{}}
	for _, entry := range entries {
		fileName, method, err := ParseExemption(entry)
		if err != nil {
			return nil, err
		}
		ret.Register(fileName, method)
	}
	return ret, nil
}

// Register appends fileName::method to the set
func (e *Exemptions) Register(fileName, method string) {
	key := ExemptionKey(fileName, method)
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.keys == nil {
		e.keys = map[string]struct{}{}
	}
	if _, ok := e.keys[key]; ok {
		return
	}
	e.keys[key] = struct{}{}
	e.version++
}

// Has returns true if fileName::method was registered
func (e *Exemptions) Has(fileName, method string) bool {
	return e.Contains(ExemptionKey(fileName, method))
}

// Contains returns true for exact key match
func (e *Exemptions) Contains(key string) bool {
	if e == nil {
		return false
	}
	e.mux.RLock()
	defer e.mux.RUnlock()
	_, ok := e.keys[key]
	return ok
}

// Version changes with every new entry
func (e *Exemptions) Version() uint64 {
	if e == nil {
		return 0
	}
	e.mux.RLock()
	defer e.mux.RUnlock()
	return e.version
}

// Keys returns sorted entries
func (e *Exemptions) Keys() []string {
	if e == nil {
		return nil
	}
	e.mux.RLock()
	ret := make([]string, 0, len(e.keys))
	for key := range e.keys {
		ret = append(ret, key)
	}
	e.mux.RUnlock()
	sort.Strings(ret)
	return ret
}
