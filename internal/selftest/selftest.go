// Package selftest runs known-answer tests of every block cipher and mode
// of operation, the way the "-selftest" command line option does before
// anything else.
package selftest

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/akcrypt/akcrypt/internal/bckey"
	"github.com/akcrypt/akcrypt/internal/gftables"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

// Test is one known-answer test.
type Test struct {
	Name string
	Kind bckey.Kind
	// Key is the hex encoded key material.
	Key string
	// Run computes the answer from a fresh key object.
	Run func(k *bckey.Key) ([]byte, error)
	// Want is the hex encoded expected answer.
	Want string
}

func unhex(s ...string) []byte {
	b, err := hex.DecodeString(strings.Join(s, ""))
	if err != nil {
		panic(err)
	}
	return b
}

func (t Test) check() error {
	k, err := bckey.NewKey(t.Kind)
	if err != nil {
		return err
	}
	defer k.Destroy()
	if err := k.SetKey(unhex(t.Key)); err != nil {
		return err
	}
	have, err := t.Run(k)
	if err != nil {
		return err
	}
	if want := unhex(t.Want); !bytes.Equal(have, want) {
		return fmt.Errorf("wrong answer %x, want %x", have, want)
	}
	return nil
}

// Run executes tests concurrently, each on its own key object, and returns
// all failures. The Kuznyechik tables must have been initialized.
func Run(ctx context.Context, tests []Test) error {
	if t := gftables.Current(); t == nil {
		return fmt.Errorf("selftest: tables not initialized")
	} else if err := t.Check(); err != nil {
		return fmt.Errorf("selftest: %s tables: %w", t.Variant, err)
	}

	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tests {
		t := t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := t.check()
			if err == nil {
				tlog.Debug.Printf("selftest: %s ok", t.Name)
				return nil
			}
			mu.Lock()
			result = multierror.Append(result, fmt.Errorf("%s: %w", t.Name, err))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return result.ErrorOrNil()
}

// RunAll executes Tests().
func RunAll(ctx context.Context) error {
	return Run(ctx, Tests())
}
