// Package config loads the environment-driven tuning knobs for the VM: a
// step limit that bounds a single evaluation (§4.4, §7) and initial
// value/frame stack sizes.
package config

import "github.com/caarlos0/env/v6"

// VM holds the settings the machine package applies to every Eval call:
// MaxSteps is a hard limit (zero means unlimited); the stack sizes only
// presize the value and frame stacks and do not cap their growth.
type VM struct {
	MaxSteps       uint64 `env:"MAX_STEPS" envDefault:"0"`
	ValueStackSize int    `env:"VALUE_STACK_SIZE" envDefault:"64"`
	FrameStackSize int    `env:"FRAME_STACK_SIZE" envDefault:"64"`
}

// Load populates a VM config from JYMBOL_-prefixed environment variables,
// falling back to defaults for anything unset.
func Load() (VM, error) {
	var c VM
	if err := env.Parse(&c, env.Options{Prefix: "JYMBOL_"}); err != nil {
		return VM{}, err
	}
	return c, nil
}
