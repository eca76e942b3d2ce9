package main

import (
	"reflect"
	"testing"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
)

func TestParseCliOpts(t *testing.T) {
	defaultArgs := argContainer{
		alg: "kuznyechik",
	}

	type testcaseContainer struct {
		// i is the input
		i []string
		// o is the expected output
		o argContainer
	}

	var testcases []testcaseContainer

	testcases = append(testcases, testcaseContainer{
		i: []string{"akcrypt"},
		o: defaultArgs,
	})

	o := defaultArgs
	o.quiet = true
	testcases = append(testcases, testcaseContainer{
		i: []string{"akcrypt", "-q"},
		o: o,
	})
	testcases = append(testcases, testcaseContainer{
		i: []string{"akcrypt", "-quiet"},
		o: o,
	})
	testcases = append(testcases, testcaseContainer{
		i: []string{"akcrypt", "--quiet"},
		o: o,
	})

	o = defaultArgs
	o.ctrACPKM = true
	o.alg = "magma"
	o.key = "00112233"
	o.iv = "12345678"
	o.section = 4
	testcases = append(testcases, testcaseContainer{
		i: []string{"akcrypt", "-ctr-acpkm", "-alg", "magma", "-key", "00112233", "-iv", "12345678", "-section", "4"},
		o: o,
	})

	o = defaultArgs
	o.cmac = true
	o.taglen = 8
	o.key = "ff"
	testcases = append(testcases, testcaseContainer{
		i: []string{"akcrypt", "-cmac", "-taglen=8", "-key=ff"},
		o: o,
	})

	o = defaultArgs
	o.syslog = true
	o.ecbEncrypt = true
	testcases = append(testcases, testcaseContainer{
		i: []string{"akcrypt", "-syslog", "-ecb-encrypt"},
		o: o,
	})

	for _, tc := range testcases {
		o, err := parseCliOpts(tc.i)
		if err != nil {
			t.Errorf("in=%v: %v", tc.i, err)
			continue
		}
		if !reflect.DeepEqual(o, tc.o) {
			t.Errorf("in=%v\nwant=%v\nhave=%v", tc.i, tc.o, o)
		}
	}
}

func TestCheckArgs(t *testing.T) {
	testcases := []struct {
		name string
		args argContainer
		ok   bool
	}{
		{"nothing", argContainer{}, true},
		{"one op", argContainer{ctr: true}, true},
		{"two ops", argContainer{ctr: true, cmac: true}, false},
		{"list and op", argContainer{list: true, ecbEncrypt: true}, false},
		{"debug and quiet", argContainer{debug: true, quiet: true}, false},
		{"negative taglen", argContainer{cmac: true, taglen: -1}, false},
		{"taglen without cmac", argContainer{ctr: true, taglen: 4}, false},
		{"section", argContainer{ctrACPKM: true, section: 2}, true},
		{"section without acpkm", argContainer{ctr: true, section: 2}, false},
		{"negative section", argContainer{ctrACPKM: true, section: -2}, false},
		{"nopad", argContainer{cbcDecrypt: true, nopad: true}, true},
		{"nopad with ctr", argContainer{ctr: true, nopad: true}, false},
	}
	for _, tc := range testcases {
		err := checkArgs(&tc.args)
		if (err == nil) != tc.ok {
			t.Errorf("%s: ok=%v err=%v", tc.name, tc.ok, err)
		}
		if err != nil && exitcodes.Code(err) != exitcodes.Usage {
			t.Errorf("%s: exit code %d", tc.name, exitcodes.Code(err))
		}
	}
}

func TestOp(t *testing.T) {
	testcases := []struct {
		args argContainer
		want dataOp
	}{
		{argContainer{}, opNone},
		{argContainer{ecbEncrypt: true}, opECBEncrypt},
		{argContainer{ecbDecrypt: true}, opECBDecrypt},
		{argContainer{cbcEncrypt: true}, opCBCEncrypt},
		{argContainer{cbcDecrypt: true}, opCBCDecrypt},
		{argContainer{ctr: true}, opCTR},
		{argContainer{ctrACPKM: true}, opCTRACPKM},
		{argContainer{cmac: true}, opCMAC},
	}
	for _, tc := range testcases {
		if have := tc.args.op(); have != tc.want {
			t.Errorf("want %v, have %v", tc.want, have)
		}
	}
}
