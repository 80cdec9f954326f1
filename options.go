package huffpack

// Option configures Compress.
type Option func(*options)

type options struct {
	canonical bool
	checksum  bool
}

func defaultOptions() options {
	return options{checksum: true}
}

// WithCanonicalCodes makes Compress replace the Huffman codes with the
// canonical code of the same lengths.  The code lengths, and so the size of
// the packed bits, do not change; the codes no longer depend on how ties
// between equal weights were broken.
//
func WithCanonicalCodes() Option {
	return func(o *options) {
		o.canonical = true
	}
}

// WithoutChecksum makes Compress omit the checksum of the input, so
// Decompress cannot verify it.
func WithoutChecksum() Option {
	return func(o *options) {
		o.checksum = false
	}
}
