package bpfmap

import "go.bpfkit.dev/bpfmap/bpfsys"

// WithMap creates a map from spec, runs fn with the resulting handle, and
// guarantees the handle is closed before WithMap returns, even if fn
// panics or returns an error. It is the bracket spec.md's resource model
// calls for: every create paired with a guaranteed release scope.
func WithMap(sc bpfsys.Syscaller, spec Spec, fn func(*Map) error) (err error) {
	m, err := Create(sc, spec)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(m)
}
