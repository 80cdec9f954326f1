// Command huffpack compresses and decompresses files.
//
//     huffpack [-canonical] [-nochecksum] encode <input> <output>
//     huffpack decode <input> <output>
//
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chronos-tachyon/huffpack"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("huffpack: ")

	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}

var errUsage = errors.New("usage: huffpack [-canonical] [-nochecksum] encode|decode <input> <output>")

func run(args []string, stderr io.Writer) error {
	logger := log.New(stderr, "huffpack: ", 0)

	fs := flag.NewFlagSet("huffpack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	canonical := fs.Bool("canonical", false, "use canonical Huffman codes")
	noChecksum := fs.Bool("nochecksum", false, "omit the checksum of the input")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return errUsage
	}
	action, inputPath, outputPath := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	var opts []huffpack.Option
	if *canonical {
		opts = append(opts, huffpack.WithCanonicalCodes())
	}
	if *noChecksum {
		opts = append(opts, huffpack.WithoutChecksum())
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	var output []byte
	switch action {
	case "encode":
		p, err := huffpack.Compress(input, opts...)
		if err != nil {
			return fmt.Errorf("compressing %s: %w", inputPath, err)
		}
		output, err = p.MarshalBinary()
		if err != nil {
			return err
		}
		logger.Printf("%s: %d bytes -> %d bits (%d bytes with header)", inputPath, len(input), p.BitCount, len(output))

	case "decode":
		var p huffpack.Payload
		if err := p.UnmarshalBinary(input); err != nil {
			return fmt.Errorf("reading %s: %w", inputPath, err)
		}
		output, err = huffpack.Decompress(p)
		if err != nil {
			return fmt.Errorf("decompressing %s: %w", inputPath, err)
		}

	default:
		return fmt.Errorf("invalid action %q, please choose encode or decode: %w", action, errUsage)
	}

	return os.WriteFile(outputPath, output, 0o666)
}
