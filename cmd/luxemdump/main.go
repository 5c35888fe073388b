// Command luxemdump reads a luxem document and prints one line per
// structural event, prefixed with the current nesting depth, in the
// style of the format's original demonstration driver.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/luxemfmt/luxem-go/luxem"
)

func main() {
	file := flag.String("file", "", "path to read instead of stdin")
	chunk := flag.Int("chunk", 4096, "read buffer size in bytes, for exercising chunked feeding")
	flag.Parse()

	if err := run(*file, *chunk, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "luxemdump: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, chunkSize int, out io.Writer) error {
	in := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	if chunkSize <= 0 {
		chunkSize = 4096
	}

	depth := 0
	printf := func(format string, args ...interface{}) {
		fmt.Fprintf(out, "%03d "+format+"\n", append([]interface{}{depth}, args...)...)
	}

	r := luxem.NewReader()
	r.Handler = luxem.Handler{
		ObjectBegin: func() bool { printf("Beginning object"); depth++; return true },
		ObjectEnd:   func() bool { depth--; printf("Ending object"); return true },
		ArrayBegin:  func() bool { printf("Beginning array"); depth++; return true },
		ArrayEnd:    func() bool { depth--; printf("Ending array"); return true },
		Key:         func(b []byte) bool { printf("Key: %s", b); return true },
		Type:        func(b []byte) bool { printf("Type: %s", b); return true },
		Primitive:   func(b []byte) bool { printf("Primitive: %s", b); return true },
	}

	buf := make([]byte, 0, chunkSize)
	readBuf := make([]byte, chunkSize)
	for {
		n, readErr := in.Read(readBuf)
		buf = append(buf, readBuf[:n]...)
		for len(buf) > 0 {
			consumed, err := r.Feed(buf)
			if err != nil {
				return err
			}
			buf = buf[consumed:]
			if consumed == 0 {
				break
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
