// Command cbmls lists the directory of a Commodore 8-bit archive or
// disk-image file: ARC and its self-extractor variants, Lynx, LHA,
// T64, D64/X64/1581, the P00 family, N64, LBR and TAP.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/dfandrich/cbmarc"
	"github.com/dfandrich/cbmarc/types"
)

var extensionFallbacks = []string{
	".t64", ".d64", ".d71", ".d81", ".d80", ".d82", ".x64",
	".lnx", ".lzh", ".arc", ".p00", ".s00", ".u00", ".r00", ".d00", ".n64", ".lbr", ".tap",
}

var narrowListing = flag.Bool("d", false, "1541-style two-column listing instead of the wide table")

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-d] file...\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(exitUsage)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	worst := 0
	for _, arg := range args {
		status := listOne(out, arg, *narrowListing)
		if int(status) > worst {
			worst = int(status)
		}
	}
	out.Flush()
	os.Exit(worst)
}

// Process exit codes. A usage error (1) is CLI-local; an open/read
// error (2) also covers a Dir call that reports StatusError, and a
// Dir call that reports StatusUnsupported surfaces as 3, matching
// cbmarc.Status's own numbering.
const (
	exitOK          = 0
	exitUsage       = 1
	exitOpenFailed  = 2
	exitUnsupported = 3
)

func listOne(out *bufio.Writer, path string, narrow bool) int {
	r, name, err := openWithFallback(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return exitOpenFailed
	}

	kind := cbmarc.Determine(r, name)
	if kind == types.Unknown {
		fmt.Fprintf(os.Stderr, "%s: not a recognized archive or disk image\n", path)
		return exitUnsupported
	}

	listing := newListing(out, narrow)
	totals, status := cbmarc.Dir(r, kind, cbmarc.Config{Wide: !narrow}, listing)
	switch status {
	case cbmarc.StatusError:
		fmt.Fprintf(os.Stderr, "%s: corrupt %s container\n", path, kind)
		return exitOpenFailed
	case cbmarc.StatusUnsupported:
		fmt.Fprintf(os.Stderr, "%s: unsupported %s variant\n", path, kind)
		return exitUnsupported
	}
	listing.printTotals(totals, kind)
	return exitOK
}

// openWithFallback opens path, retrying with each extension in
// extensionFallbacks (in order) when the bare path has no extension
// and fails to open. "-" reads standard input, refusing early if it's
// an interactive terminal rather than blocking on a read.
func openWithFallback(path string) (io.ReaderAt, string, error) {
	if path == "-" {
		return openStdin()
	}

	if f, err := os.Open(path); err == nil {
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), path, nil
	}

	if strings.Contains(lastPathElement(path), ".") {
		return nil, "", fmt.Errorf("cannot open")
	}

	var lastErr error
	for _, ext := range extensionFallbacks {
		f, err := os.Open(path + ext)
		if err != nil {
			lastErr = err
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), path + ext, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("cannot open")
	}
	return nil, "", lastErr
}

func lastPathElement(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func openStdin() (io.ReaderAt, string, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, "", fmt.Errorf("refusing to read archive data from a terminal")
	}
	setStdinBinary()
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "-", nil
}
