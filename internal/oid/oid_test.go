package oid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akcrypt/akcrypt/internal/bckey"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		in   string
		want bckey.Kind
	}{
		{"magma", bckey.Magma},
		{"MAGMA", bckey.Magma},
		{"1.2.643.7.1.1.5.1", bckey.Magma},
		{"kuznyechik", bckey.Kuznyechik},
		{" Kuznechik ", bckey.Kuznyechik},
		{"grasshopper", bckey.Kuznyechik},
		{"1.2.643.7.1.1.5.2", bckey.Kuznyechik},
		{"sm4", bckey.SM4},
		{"1.2.156.10197.1.104", bckey.SM4},
	}
	for _, tc := range testCases {
		// twice, the second time from the cache
		for i := 0; i < 2; i++ {
			k, err := Resolve(tc.in)
			require.NoError(t, err, tc.in)
			require.Equal(t, tc.want, k, tc.in)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, s := range []string{"", "aes", "1.2.643", "magma2"} {
		_, err := Resolve(s)
		require.ErrorIs(t, err, ErrNotFound, s)
	}
}

func TestList(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	l := r.List()
	require.Len(t, l, len(bckey.Kinds()))
	names := []string{}
	for _, e := range l {
		names = append(names, e.Name)
		alg, err := bckey.AlgorithmFor(e.Kind)
		require.NoError(t, err)
		require.Equal(t, alg.BlockSize(), e.BlockSize)
		require.Equal(t, alg.KeySize(), e.KeySize)
	}
	require.Equal(t, []string{"kuznyechik", "magma", "sm4"}, names)
}

func TestBindByName(t *testing.T) {
	k := bckey.New()
	require.NoError(t, k.BindByName(Default, "sm4"))
	require.Equal(t, 16, k.BlockSize())

	k = bckey.New()
	require.ErrorIs(t, k.BindByName(Default, "des"), bckey.ErrWrongBlockCipher)
}
