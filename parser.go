package argshape

import (
	"os"

	"github.com/argshape/argshape/internal/engine"
)

// Defaults is a dynamic defaults patch applied to one Parse call: keys are
// Go field names, values replace the declared defaults of arguments that
// were not supplied. The entry under a subcommand dispatch field is a
// nested Defaults keyed by branch name.
type Defaults map[string]any

// flatten rewrites nested Defaults values into plain maps, so the engine
// can treat the patch uniformly at every level.
func (d Defaults) flatten() map[string]any {
	if d == nil {
		return nil
	}

	out := make(map[string]any, len(d))
	for key, val := range d {
		switch v := val.(type) {
		case Defaults:
			out[key] = v.flatten()
		case map[string]Defaults:
			nested := make(map[string]any, len(v))
			for name, sub := range v {
				nested[name] = sub.flatten()
			}
			out[key] = nested
		default:
			out[key] = val
		}
	}

	return out
}

// Parse runs the parser over argv and reconstructs a fresh instance of the
// shape. A nil argv parses the process arguments. The same Parser can run
// any number of times, concurrently: no state survives a call.
func (p *Parser[T]) Parse(argv []string) (*T, error) {
	return p.ParseWithDefaults(argv, nil)
}

// ParseWithDefaults is Parse with a dynamic defaults patch layered over
// the declared defaults for this one call. The patch is validated in full
// before any token is looked at.
func (p *Parser[T]) ParseWithDefaults(argv []string, defaults Defaults) (*T, error) {
	if argv == nil {
		argv = os.Args[1:]
	}

	out, err := engine.Run(p.shape, argv, defaults.flatten(), p.opts)
	if err != nil {
		return nil, err
	}

	return out.Interface().(*T), nil
}
