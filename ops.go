package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/akcrypt/akcrypt/internal/bckey"
	"github.com/akcrypt/akcrypt/internal/exitcodes"
	"github.com/akcrypt/akcrypt/internal/oid"
	"github.com/akcrypt/akcrypt/internal/random"
	"github.com/akcrypt/akcrypt/internal/tlog"
)

// Input is processed in chunks of this size. It is a multiple of every
// block size.
const chunkSize = 64 * 1024

// newKey binds a key to "-alg" and installs "-key".
func newKey(args *argContainer) (*bckey.Key, error) {
	k := bckey.New()
	if err := k.BindByName(oid.Default, args.alg); err != nil {
		return nil, exitcodes.Errorf(exitcodes.Usage, "-alg: %w", err)
	}
	key, err := unhexArg("key", args.key)
	if err != nil {
		return nil, err
	}
	defer func() {
		for i := range key {
			key[i] = 0
		}
	}()
	if len(key) == 0 {
		return nil, exitcodes.NewErr("-key is required", exitcodes.Key)
	}
	if err := k.SetKey(key); err != nil {
		return nil, exitcodes.Wrap(err, exitcodes.Key)
	}
	tlog.Debug.Printf("Using %s, %d blocks of resource", k.Algorithm().Name(), k.Resource())
	return k, nil
}

// opIV returns "-iv", or a fresh random IV of "n" bytes that is printed to
// "diag". Decrypting CTR output needs the IV printed when it was encrypted.
func opIV(args *argContainer, op dataOp, n int, diag io.Writer) ([]byte, error) {
	iv, err := unhexArg("iv", args.iv)
	if err != nil {
		return nil, err
	}
	if len(iv) > 0 {
		return iv, nil
	}
	if op == opCBCDecrypt {
		return nil, exitcodes.NewErr("-cbc-decrypt needs -iv", exitcodes.Usage)
	}
	iv, err = random.Bytes(random.Prefetched, n)
	if err != nil {
		return nil, exitcodes.Wrap(err, exitcodes.Other)
	}
	fmt.Fprintf(diag, "iv: %x\n", iv)
	return iv, nil
}

// runDataOp reads "in", applies "op" and writes the result to "out".
func runDataOp(args *argContainer, op dataOp, in io.Reader, out, diag io.Writer) error {
	k, err := newKey(args)
	if err != nil {
		return err
	}
	defer k.Destroy()
	bs := k.BlockSize()

	if op == opCMAC {
		msg, err := io.ReadAll(in)
		if err != nil {
			return exitcodes.Wrap(err, exitcodes.IO)
		}
		tagLen := args.taglen
		if tagLen == 0 {
			tagLen = bs
		}
		tag, err := k.CMAC(msg, tagLen)
		if err != nil {
			return opErr(op, err)
		}
		if _, err := fmt.Fprintf(out, "%x\n", tag); err != nil {
			return exitcodes.Wrap(err, exitcodes.IO)
		}
		return nil
	}

	var iv []byte
	switch op {
	case opCBCEncrypt, opCBCDecrypt:
		if iv, err = opIV(args, op, bs, diag); err != nil {
			return err
		}
	case opCTR, opCTRACPKM:
		if iv, err = opIV(args, op, bs/2, diag); err != nil {
			return err
		}
	}
	section := args.section
	if section == 0 {
		section = k.SectionLen()
	}
	pad := !args.nopad

	first := true
	return processStream(in, out, func(chunk []byte, last bool) ([]byte, error) {
		chunkIV := iv
		if !first {
			chunkIV = nil
		}
		first = false
		if last && pad {
			switch op {
			case opECBEncrypt, opCBCEncrypt:
				chunk = bckey.Pad(chunk, bs)
			}
		}
		res := make([]byte, len(chunk))
		switch op {
		case opECBEncrypt:
			err = k.EncryptECB(res, chunk)
		case opECBDecrypt:
			err = k.DecryptECB(res, chunk)
		case opCBCEncrypt:
			err = k.EncryptCBC(res, chunk, chunkIV)
		case opCBCDecrypt:
			err = k.DecryptCBC(res, chunk, chunkIV)
		case opCTR:
			err = k.CTR(res, chunk, chunkIV)
		case opCTRACPKM:
			err = k.CTRACPKM(res, chunk, section, chunkIV)
		}
		if err != nil {
			return nil, opErr(op, err)
		}
		if last && pad {
			switch op {
			case opECBDecrypt, opCBCDecrypt:
				if res, err = bckey.Unpad(res, bs); err != nil {
					return nil, opErr(op, err)
				}
			}
		}
		return res, nil
	})
}

// opErr attaches an exit code to an error returned by a mode of operation.
func opErr(op dataOp, err error) error {
	code := exitcodes.Other
	if errors.Is(err, bckey.ErrLowKeyResource) {
		code = exitcodes.Resource
	}
	return exitcodes.Errorf(code, "%s: %w", op, err)
}

// processStream reads "in" in chunks of chunkSize bytes and writes what
// "fn" makes of them to "out". "last" is set for the final chunk, which may
// be shorter or even empty.
func processStream(in io.Reader, out io.Writer, fn func(chunk []byte, last bool) ([]byte, error)) error {
	r := bufio.NewReaderSize(in, chunkSize)
	buf := make([]byte, chunkSize)
	for {
		n, err := io.ReadFull(r, buf)
		last := false
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			last = true
		} else if err != nil {
			return exitcodes.Wrap(err, exitcodes.IO)
		} else if _, err := r.Peek(1); err == io.EOF {
			last = true
		}
		res, err := fn(buf[:n], last)
		if err != nil {
			return err
		}
		if _, err := out.Write(res); err != nil {
			return exitcodes.Wrap(err, exitcodes.IO)
		}
		if last {
			return nil
		}
	}
}
