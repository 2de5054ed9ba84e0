package arena

import (
	"sort"

	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/types"
)

// TypeID is an index into the portable type registry.
type TypeID = uint32

type state uint8

const (
	pending state = iota
	filling
	done
)

type slot struct {
	td    *types.TypeDef
	state state
}

// Builder produces the definition for one id. It may call Ref for any id
// and Resolved for ids whose finished shape it needs.
type Builder func(id TypeID) (*types.TypeDef, error)

// Arena holds one definition per type id. Every id gets a placeholder
// before any is built, so definitions can reference each other in any
// order, including cyclically.
type Arena struct {
	slots map[TypeID]*slot
	build Builder
	ids   []TypeID
}

func New() *Arena {
	return &Arena{slots: make(map[TypeID]*slot)}
}

// Reserve allocates the placeholder for id.
func (a *Arena) Reserve(id TypeID) error {
	if _, ok := a.slots[id]; ok {
		return errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			Value(id).
			Detail("duplicate type id %d", id).
			Build()
	}
	a.slots[id] = &slot{td: types.Placeholder("")}
	a.ids = append(a.ids, id)
	return nil
}

// Ref returns the definition slot for id without building it.
func (a *Arena) Ref(id TypeID) (*types.TypeDef, error) {
	s, ok := a.slots[id]
	if !ok {
		return nil, unknownID(id)
	}
	return s.td, nil
}

// Resolved returns the definition for id, building it first if needed.
// Requesting an id that is still being built is a cycle no placeholder can
// break.
func (a *Arena) Resolved(id TypeID) (*types.TypeDef, error) {
	s, ok := a.slots[id]
	if !ok {
		return nil, unknownID(id)
	}
	switch s.state {
	case done:
		return s.td, nil
	case filling:
		return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			Value(id).
			Detail("type %d is defined in terms of itself", id).
			Build()
	}
	if a.build == nil {
		return nil, errors.NotInitialized(errors.PhaseMetadata, "type arena")
	}

	s.state = filling
	td, err := a.build(id)
	if err != nil {
		s.state = pending
		return nil, err
	}
	if td != s.td {
		s.td.Fill(td)
	}
	s.state = done
	return s.td, nil
}

// Fill builds every reserved id with build.
func (a *Arena) Fill(build Builder) error {
	a.build = build
	for _, id := range a.ids {
		if _, err := a.Resolved(id); err != nil {
			return err
		}
	}
	return nil
}

func (a *Arena) Len() int {
	return len(a.ids)
}

// IDs returns the reserved ids in ascending order.
func (a *Arena) IDs() []TypeID {
	out := append([]TypeID(nil), a.ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func unknownID(id TypeID) error {
	return errors.New(errors.PhaseMetadata, errors.KindInvalidData).
		Value(id).
		Detail("reference to unknown type id %d", id).
		Build()
}
