package records

import (
	"math/rand"
	randv2 "math/rand/v2"
	"time"
)

// Person is a plain record.
type Person struct {
	// ID identifies the person.
	ID   int
	Name string // display name
	Tags *[]string
	vip  bool
}

// Flag is a named bool.
type Flag bool

// Options mixes field kinds.
type Options struct {
	Verbose Flag
	Timeout time.Duration
	Source  *rand.Rand
	Reader  interface{ Read([]byte) (int, error) }
	Seed    [32]byte
	Labels  map[string]string
	Next    func() *randv2.Rand
}

// Pair is generic.
type Pair[K comparable, V any] struct {
	Key   K
	Value *V
}

// Base is embedded below.
type Base struct {
	Created time.Time
}

// Wrapped embeds Base.
type Wrapped struct {
	Base
	Name string
}

// Number is a union constraint, not a record.
type Number interface {
	~int | ~float64
}

// Alias is an alias and is skipped.
type Alias = Person

// Level is not a struct.
type Level int
