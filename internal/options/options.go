// Package options holds the process-wide tunables: log level, key resources
// and CTR-ACPKM section lengths. They can be loaded from a TOML file.
package options

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

// Log levels.
const (
	LogNone     = 0
	LogStandard = 1
	LogMaximum  = 2
)

// ErrInvalidOption is wrapped by every validation failure.
var ErrInvalidOption = errors.New("options: invalid value")

// Options is the set of tunables.
type Options struct {
	LogLevel int `toml:"log_level"`

	// Number of blocks a freshly installed key may process.
	MagmaResource     int64 `toml:"magma_cipher_resource"`
	KuznechikResource int64 `toml:"kuznechik_cipher_resource"`
	SM4Resource       int64 `toml:"sm4_cipher_resource"`

	// Default CTR-ACPKM section lengths in blocks.
	MagmaSection     int `toml:"acpkm_section_magma_block_count"`
	KuznechikSection int `toml:"acpkm_section_kuznechik_block_count"`
	SM4Section       int `toml:"acpkm_section_sm4_block_count"`

	// Use the byte-reversed round tables for the 128-bit GOST cipher.
	ReversedTables bool `toml:"reversed_tables"`
}

// Default returns the built-in option values.
func Default() Options {
	return Options{
		LogLevel:          LogStandard,
		MagmaResource:     1 << 22,
		KuznechikResource: 1 << 22,
		SM4Resource:       1 << 22,
		MagmaSection:      128,
		KuznechikSection:  512,
		SM4Section:        512,
	}
}

// Validate reports every out-of-range value.
func (o Options) Validate() error {
	var result *multierror.Error
	if o.LogLevel < LogNone || o.LogLevel > LogMaximum {
		result = multierror.Append(result, fmt.Errorf("%w: log_level=%d, must be %d..%d",
			ErrInvalidOption, o.LogLevel, LogNone, LogMaximum))
	}
	resources := []struct {
		name string
		v    int64
	}{
		{"magma_cipher_resource", o.MagmaResource},
		{"kuznechik_cipher_resource", o.KuznechikResource},
		{"sm4_cipher_resource", o.SM4Resource},
	}
	for _, r := range resources {
		if r.v <= 0 {
			result = multierror.Append(result, fmt.Errorf("%w: %s=%d, must be positive", ErrInvalidOption, r.name, r.v))
		}
	}
	sections := []struct {
		name string
		v    int
	}{
		{"acpkm_section_magma_block_count", o.MagmaSection},
		{"acpkm_section_kuznechik_block_count", o.KuznechikSection},
		{"acpkm_section_sm4_block_count", o.SM4Section},
	}
	for _, s := range sections {
		if s.v <= 0 {
			result = multierror.Append(result, fmt.Errorf("%w: %s=%d, must be positive", ErrInvalidOption, s.name, s.v))
		}
	}
	return result.ErrorOrNil()
}

// Load reads a TOML file on top of the defaults. Unknown keys are an error.
func Load(path string) (Options, error) {
	o := Default()
	md, err := toml.DecodeFile(path, &o)
	if err != nil {
		return Options{}, fmt.Errorf("options: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Options{}, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalidOption, path, strings.Join(keys, ", "))
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

var current atomic.Value

func init() {
	current.Store(Default())
}

// Get returns the active options.
func Get() Options {
	return current.Load().(Options)
}

// Set validates o and makes it the active set. Keys installed afterwards
// pick up the new resources.
func Set(o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	current.Store(o)
	return nil
}
