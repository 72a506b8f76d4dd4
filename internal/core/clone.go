package core

import (
	"fmt"

	"github.com/barkimedes/go-deepcopy"
	"github.com/huandu/go-clone"
	"github.com/mitchellh/copystructure"
)

// CloneStrategy names a deep copy implementation.
type CloneStrategy string

const (
	// CloneGoClone uses github.com/huandu/go-clone. It is the default.
	CloneGoClone CloneStrategy = "go-clone"
	// CloneCopyStructure uses github.com/mitchellh/copystructure.
	CloneCopyStructure CloneStrategy = "copystructure"
	// CloneDeepCopy uses github.com/barkimedes/go-deepcopy.
	CloneDeepCopy CloneStrategy = "deepcopy"
)

// Strategies lists every supported CloneStrategy.
func Strategies() []CloneStrategy {
	return []CloneStrategy{CloneGoClone, CloneCopyStructure, CloneDeepCopy}
}

// Cloner deep copies dynamic values.
type Cloner interface {
	Clone(v any) (any, error)
}

type clonerFunc func(v any) (any, error)

func (f clonerFunc) Clone(v any) (any, error) {
	return f(v)
}

// NewCloner returns the Cloner for strategy. An empty strategy selects the
// default.
func NewCloner(strategy CloneStrategy) (Cloner, error) {
	switch strategy {
	case "", CloneGoClone:
		return clonerFunc(func(v any) (any, error) {
			if v == nil {
				return nil, nil
			}
			return clone.Clone(v), nil
		}), nil
	case CloneCopyStructure:
		return clonerFunc(func(v any) (any, error) {
			if v == nil {
				return nil, nil
			}
			dst, err := copystructure.Copy(v)
			if err != nil {
				return nil, fmt.Errorf("copystructure: %w", err)
			}
			return dst, nil
		}), nil
	case CloneDeepCopy:
		return clonerFunc(func(v any) (any, error) {
			if v == nil {
				return nil, nil
			}
			dst, err := deepcopy.Anything(v)
			if err != nil {
				return nil, fmt.Errorf("deepcopy: %w", err)
			}
			return dst, nil
		}), nil
	default:
		return nil, fmt.Errorf("unknown clone strategy %q", strategy)
	}
}

// MustCloner is like NewCloner but panics on an unknown strategy.
func MustCloner(strategy CloneStrategy) Cloner {
	c, err := NewCloner(strategy)
	if err != nil {
		panic(err)
	}
	return c
}
