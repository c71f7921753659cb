package engine

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/alex65536/go-chess/uci"
	"github.com/alex65536/go-chess/util/maybe"
)

// Options describe the engine as written in a TOML file.
type Options struct {
	Name          string         `toml:"name"`
	Args          []string       `toml:"args"`
	Options       map[string]any `toml:"options,omitempty"`
	CreateTimeout *time.Duration `toml:"create-timeout,omitempty"`
}

func (o Options) Clone() Options {
	o.Args = slices.Clone(o.Args)
	o.Options = maps.Clone(o.Options) // Only primitives and strings are allowed, so OK to shallow copy.
	if o.CreateTimeout != nil {
		t := *o.CreateTimeout
		o.CreateTimeout = &t
	}
	return o
}

func (o Options) PoolOptions() (PoolOptions, error) {
	if o.Name == "" {
		return PoolOptions{}, fmt.Errorf("no engine name")
	}

	createTimeout := maybe.None[time.Duration]()
	if o.CreateTimeout != nil {
		createTimeout = maybe.Some(*o.CreateTimeout)
	}

	var opts map[string]uci.OptValue
	if o.Options != nil {
		opts = make(map[string]uci.OptValue, len(o.Options))
		for name, opt := range o.Options {
			var newOpt uci.OptValue
			switch v := opt.(type) {
			case bool:
				newOpt = uci.OptValueBool(v)
			case int:
				newOpt = uci.OptValueInt(int64(v))
			case int64:
				newOpt = uci.OptValueInt(v)
			case float64:
				intVal := int64(v)
				if float64(intVal) != v {
					return PoolOptions{}, fmt.Errorf("option %q is number but not int", name)
				}
				newOpt = uci.OptValueInt(intVal)
			case string:
				newOpt = uci.OptValueString(v)
			default:
				return PoolOptions{}, fmt.Errorf("option %q has bad type %T", name, opt)
			}
			opts[name] = newOpt
		}
	}

	return PoolOptions{
		ExeName:       o.Name,
		Args:          slices.Clone(o.Args),
		Options:       opts,
		CreateTimeout: createTimeout,
	}, nil
}
