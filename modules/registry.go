package modules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/inference-sim/simbridge/bridge"
	"github.com/inference-sim/simbridge/kernel"
)

// ErrUnknownModule is returned by Lookup for names not in the registry.
var ErrUnknownModule = errors.New("unknown module")

// maxSuggestDistance bounds the edit distance of a "did you mean" suggestion.
const maxSuggestDistance = 3

var registry = map[string]bridge.Factory{
	"counter": func(ctx *kernel.Context) (kernel.Module, error) {
		return NewCounter(ctx), nil
	},
	"register": func(ctx *kernel.Context) (kernel.Module, error) {
		return NewRegister(ctx, 32), nil
	},
	"regincr": func(ctx *kernel.Context) (kernel.Module, error) {
		return NewRegIncr(ctx), nil
	},
	"gcd": func(ctx *kernel.Context) (kernel.Module, error) {
		return NewGCD(ctx), nil
	},
}

// Lookup returns the factory registered under name.
func Lookup(name string) (bridge.Factory, error) {
	if f, ok := registry[name]; ok {
		return f, nil
	}
	if s := suggest(name); s != "" {
		return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownModule, name, s)
	}
	return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownModule, name, Names())
}

// Names returns the registered module names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func suggest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, n := range Names() {
		if d := levenshtein.ComputeDistance(name, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
