package state

import (
	"fmt"
	"maps"
)

type SliceName string

const (
	SliceConfig SliceName = "config"
	SliceStatus SliceName = "status"
	SliceGraph  SliceName = "graph"
	SliceLogs   SliceName = "logs"
)

// SliceNames returns the fixed set of slices. The store holds exactly
// these four from creation; nothing is ever added or removed.
func SliceNames() []SliceName {
	return []SliceName{SliceConfig, SliceStatus, SliceGraph, SliceLogs}
}

func ParseSliceName(value string) (SliceName, error) {
	name := SliceName(value)
	switch name {
	case SliceConfig, SliceStatus, SliceGraph, SliceLogs:
		return name, nil
	}
	return "", fmt.Errorf("unknown store slice: %q", value)
}

// Slice tracks one resource. Data and Err are not mutually exclusive:
// a failed refresh keeps the stale Data alongside the new Err until the
// next successful fetch overwrites it.
type Slice struct {
	Data    any
	Loading bool
	Err     error
}

// Store is an immutable snapshot of all four slices. Changes go through
// UpdateSlice, which returns a new Store and leaves the input untouched.
type Store struct {
	slices map[SliceName]Slice
}

func NewStore() Store {
	slices := make(map[SliceName]Slice, len(SliceNames()))
	for _, name := range SliceNames() {
		slices[name] = Slice{}
	}
	return Store{slices: slices}
}

func (s Store) Slice(name SliceName) Slice {
	return s.slices[name]
}

// SliceUpdate sets one field of a slice. Fields without an update keep
// their prior value, giving shallow-merge semantics.
type SliceUpdate func(*Slice)

func SetData(data any) SliceUpdate {
	return func(s *Slice) {
		s.Data = data
	}
}

func SetLoading(loading bool) SliceUpdate {
	return func(s *Slice) {
		s.Loading = loading
	}
}

func SetErr(err error) SliceUpdate {
	return func(s *Slice) {
		s.Err = err
	}
}

// UpdateSlice returns a new Store equal to store except the named slice
// has the updates applied. Pure function: the input store is never
// mutated and all other slices keep their exact prior contents, so
// consumers can detect change by comparing Data pointers.
func UpdateSlice(store Store, name SliceName, updates ...SliceUpdate) Store {
	slices := maps.Clone(store.slices)
	if slices == nil {
		slices = NewStore().slices
	}
	slice := slices[name]
	for _, update := range updates {
		update(&slice)
	}
	slices[name] = slice
	return Store{slices: slices}
}
