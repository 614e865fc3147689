package bpfmap

import (
	"fmt"

	"go.bpfkit.dev/bpfmap/bpfsys"
)

// MapInMap owns an outer map (array_of_maps or hash_of_maps) together with
// the FD of the inner template every dynamically-created inner map is
// cloned from, and tracks which inner Map handle is currently bound at
// each outer key.
type MapInMap struct {
	Outer    *Map
	template *Map
	inner    map[string]*Map
}

// NewMapInMap creates the outer map, requiring the template's FD for the
// kernel's inner-map type-checking at creation time.
func NewMapInMap(sc bpfsys.Syscaller, name string, outerKind Kind, maxEntries uint32, template *Map) (*MapInMap, error) {
	if outerKind != KindArrayOfMaps && outerKind != KindHashOfMaps {
		return nil, fmt.Errorf("bpfmap: NewMapInMap kind must be array_of_maps or hash_of_maps, got %s", outerKind)
	}
	keySize := uint32(4)
	if outerKind == KindHashOfMaps {
		keySize = template.KeySize()
	}
	outer, err := Create(sc, Spec{
		Name:            name,
		Kind:            outerKind,
		KeySize:         keySize,
		ValueSize:       4, // inner map FD
		MaxEntries:      maxEntries,
		InnerTemplateFD: uint32(template.FD()),
	})
	if err != nil {
		return nil, err
	}
	return &MapInMap{Outer: outer, template: template, inner: make(map[string]*Map)}, nil
}

// AddInner creates a fresh inner map cloned from the template's spec and
// installs its FD at key in the outer map.
func (mm *MapInMap) AddInner(sc bpfsys.Syscaller, key []byte) (*Map, error) {
	inner, err := Create(sc, mm.template.spec)
	if err != nil {
		return nil, err
	}
	fdBytes := encodeU32(uint32(inner.FD()))
	if err := mm.Outer.Update(key, fdBytes, bpfsys.Any); err != nil {
		inner.Close()
		return nil, fmt.Errorf("bpfmap: install inner map at key: %w", err)
	}
	mm.inner[string(key)] = inner
	return inner, nil
}

// RemoveInner deletes the outer key and closes the tracked inner handle,
// if any.
func (mm *MapInMap) RemoveInner(key []byte) error {
	if _, err := mm.Outer.Delete(key); err != nil {
		return err
	}
	if inner, ok := mm.inner[string(key)]; ok {
		delete(mm.inner, string(key))
		return inner.Close()
	}
	return nil
}

// InnerLookup looks up innerKey in the inner map currently bound at
// outerKey.
func (mm *MapInMap) InnerLookup(outerKey, innerKey []byte) (value []byte, ok bool, err error) {
	inner, ok := mm.inner[string(outerKey)]
	if !ok {
		return nil, false, nil
	}
	return inner.Lookup(innerKey)
}

// InnerUpdate updates innerKey/value in the inner map bound at outerKey,
// lazily creating that inner map from the template first if none is
// bound there yet.
func (mm *MapInMap) InnerUpdate(sc bpfsys.Syscaller, outerKey, innerKey, value []byte, policy bpfsys.UpdatePolicy) error {
	inner, ok := mm.inner[string(outerKey)]
	if !ok {
		var err error
		inner, err = mm.AddInner(sc, outerKey)
		if err != nil {
			return err
		}
	}
	return inner.Update(innerKey, value, policy)
}

func encodeU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
