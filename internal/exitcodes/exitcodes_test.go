package exitcodes

import (
	"errors"
	"fmt"
	"testing"
)

func TestCode(t *testing.T) {
	base := errors.New("boom")
	testTable := []struct {
		err  error
		want int
	}{
		{NewErr("bad flag", Usage), Usage},
		{Wrap(base, SelfTest), SelfTest},
		{fmt.Errorf("outer: %w", Errorf(Key, "inner: %w", base)), Key},
		{base, Other},
	}
	for _, v := range testTable {
		if have := Code(v.err); have != v.want {
			t.Errorf("%v: want %d, have %d", v.err, v.want, have)
		}
	}
	if !errors.Is(Wrap(base, IO), base) {
		t.Error("Wrap hides the wrapped error")
	}
}
