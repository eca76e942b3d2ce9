package main

import (
	"fmt"
	"io"

	"github.com/akcrypt/akcrypt/internal/exitcodes"
	"github.com/akcrypt/akcrypt/internal/gftables"
	"github.com/akcrypt/akcrypt/internal/options"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

// info pretty-prints the active options for human consumption.
// This is called when you pass the "-info" option.
func info(w io.Writer) error {
	o := options.Get()
	tables := "none"
	if t := gftables.Current(); t != nil {
		tables = t.Variant.String()
	}
	_, err := fmt.Fprintf(w, "LogLevel:          %d\n"+
		"Resource:          magma=%d kuznyechik=%d sm4=%d blocks\n"+
		"ACPKM section:     magma=%d kuznyechik=%d sm4=%d blocks\n"+
		"Kuznyechik tables: %s\n",
		o.LogLevel,
		o.MagmaResource, o.KuznechikResource, o.SM4Resource,
		o.MagmaSection, o.KuznechikSection, o.SM4Section,
		tables)
	if err != nil {
		return exitcodes.Wrap(err, exitcodes.IO)
	}
	tlog.Debug.Printf("options: %s", tlog.JSONDump(o))
	return nil
}
