package benchmark

import (
	"fmt"
	"math"
	"math/rand"
)

// ParameterKind distinguishes the value domains a parameter can take.
type ParameterKind int

const (
	// Continuous parameters take any float value in [Lower, Upper].
	Continuous ParameterKind = iota
	// Integer parameters take integral values in [Lower, Upper].
	Integer
	// Categorical parameters take one of a fixed set of choices;
	// configuration values index into Choices.
	Categorical
)

// String returns the wire name of the kind.
func (k ParameterKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("ParameterKind(%d)", int(k))
	}
}

// ParseKind is the inverse of ParameterKind.String.
func ParseKind(s string) (ParameterKind, error) {
	switch s {
	case "continuous":
		return Continuous, nil
	case "integer":
		return Integer, nil
	case "categorical":
		return Categorical, nil
	default:
		return 0, fmt.Errorf("unknown parameter kind %q", s)
	}
}

// Parameter is one typed, bounded dimension of a search space. Built once
// at benchmark construction and never mutated afterwards.
type Parameter struct {
	Name    string
	Kind    ParameterKind
	Lower   float64
	Upper   float64
	Default float64
	// Choices holds the admissible values of a Categorical parameter;
	// Default then indexes into it.
	Choices []string
}

// Configuration assigns a value to every parameter of a space by name.
// Categorical values are choice indices.
type Configuration map[string]float64

// Space is a named, ordered, seedable collection of parameters. The seed
// affects only sampling, never the parameter definitions.
type Space struct {
	name   string
	seed   int64
	params []Parameter
	rng    *rand.Rand
}

// NewSpace creates a space over a copy of params.
func NewSpace(name string, seed int64, params ...Parameter) *Space {
	return &Space{
		name:   name,
		seed:   seed,
		params: append([]Parameter(nil), params...),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Name returns the space name.
func (s *Space) Name() string { return s.name }

// Seed returns the sampling seed the space was created with.
func (s *Space) Seed() int64 { return s.seed }

// Len returns the number of parameters.
func (s *Space) Len() int { return len(s.params) }

// Parameters returns a copy of the ordered parameter sequence.
func (s *Space) Parameters() []Parameter {
	return append([]Parameter(nil), s.params...)
}

// Names returns the parameter names in space order.
func (s *Space) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}
	return names
}

// DefaultConfiguration returns the configuration holding every parameter's
// default value.
func (s *Space) DefaultConfiguration() Configuration {
	cfg := make(Configuration, len(s.params))
	for _, p := range s.params {
		cfg[p.Name] = p.Default
	}
	return cfg
}

// Sample draws a uniform random configuration using the space's seed.
func (s *Space) Sample() Configuration {
	cfg := make(Configuration, len(s.params))
	for _, p := range s.params {
		switch p.Kind {
		case Integer:
			lo, hi := int64(p.Lower), int64(p.Upper)
			cfg[p.Name] = float64(lo + s.rng.Int63n(hi-lo+1))
		case Categorical:
			cfg[p.Name] = float64(s.rng.Intn(len(p.Choices)))
		default:
			cfg[p.Name] = p.Lower + s.rng.Float64()*(p.Upper-p.Lower)
		}
	}
	return cfg
}

// Validate checks that cfg assigns an admissible value to every parameter
// of the space. Unknown extra keys are ignored.
func (s *Space) Validate(cfg Configuration) error {
	for _, p := range s.params {
		v, ok := cfg[p.Name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingParameter, p.Name)
		}
		switch p.Kind {
		case Integer:
			if v != math.Trunc(v) {
				return fmt.Errorf("%w: %s=%v is not integral", ErrInvalidValue, p.Name, v)
			}
			if v < p.Lower || v > p.Upper {
				return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrOutOfBounds, p.Name, v, p.Lower, p.Upper)
			}
		case Categorical:
			if v != math.Trunc(v) || v < 0 || int(v) >= len(p.Choices) {
				return fmt.Errorf("%w: %s=%v is not a choice index", ErrInvalidValue, p.Name, v)
			}
		default:
			if v < p.Lower || v > p.Upper {
				return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrOutOfBounds, p.Name, v, p.Lower, p.Upper)
			}
		}
	}
	return nil
}
