package huffpack

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Payload is the compressed form of a byte sequence.  Tree, Packed and
// BitCount are jointly sufficient to reconstruct the input; OriginalLength
// and Checksum let Decompress verify the result.
type Payload struct {
	// Tree holds the tree descriptor (see AppendTreeDescriptor).  It is
	// empty iff the input was empty.
	Tree []byte

	// Packed holds the encoded bits, first bit in the most significant
	// position of the first byte.
	Packed []byte

	// BitCount is the number of meaningful bits in Packed.
	BitCount uint64

	// OriginalLength is the length of the input.
	OriginalLength uint64

	// Checksum is the xxhash64 digest of the input.  It is only meaningful
	// if HasChecksum is true.
	Checksum    uint64
	HasChecksum bool
}

// Compress compresses input.  Empty input yields a Payload with an empty
// Tree and a BitCount of 0.
func Compress(input []byte, opts ...Option) (Payload, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := Payload{OriginalLength: uint64(len(input))}
	if o.checksum {
		p.Checksum = xxhash.Sum64(input)
		p.HasChecksum = true
	}
	if len(input) == 0 {
		return p, nil
	}

	root := BuildTree(CountFrequencies(input))
	codes := DeriveCodes(root)
	if o.canonical && !root.IsLeaf() {
		var err error
		codes, err = codes.Canonical()
		if err != nil {
			return Payload{}, fmt.Errorf("canonicalizing codes: %w", err)
		}
		root, err = TreeFromCodes(codes)
		if err != nil {
			return Payload{}, fmt.Errorf("building canonical tree: %w", err)
		}
	}

	packed, bitCount, err := Encode(input, codes)
	if err != nil {
		return Payload{}, err
	}
	tree, err := AppendTreeDescriptor(nil, root)
	if err != nil {
		return Payload{}, err
	}

	p.Tree = tree
	p.Packed = packed
	p.BitCount = bitCount
	return p, nil
}

// Decompress is the exact inverse of Compress.
func Decompress(p Payload) ([]byte, error) {
	root, err := ParseTreeDescriptor(p.Tree)
	if err != nil {
		return nil, err
	}

	if need := packedLen(p.BitCount); uint64(len(p.Packed)) > need {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, got %d", ErrMalformedPayload, p.BitCount, need, len(p.Packed))
	}

	// Every code is at least one bit long.
	sizeHint := p.OriginalLength
	if sizeHint > p.BitCount {
		sizeHint = p.BitCount
	}

	out, err := decode(p.Packed, p.BitCount, root, int(sizeHint))
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != p.OriginalLength {
		return nil, fmt.Errorf("%w: expected %d bytes, decoded %d", ErrLengthMismatch, p.OriginalLength, len(out))
	}
	if p.HasChecksum {
		if sum := xxhash.Sum64(out); sum != p.Checksum {
			return nil, fmt.Errorf("%w: expected %016x, got %016x", ErrChecksumMismatch, p.Checksum, sum)
		}
	}
	return out, nil
}

const (
	payloadMagic = "HPK1"

	flagChecksum byte = 1 << 0
	knownFlags        = flagChecksum
)

// MarshalBinary serializes this Payload:
//
//     magic "HPK1"
//     flags byte (bit 0: checksum present)
//     OriginalLength uvarint
//     BitCount uvarint
//     Checksum uint64, little-endian, if present
//     len(Tree) uvarint
//     Tree
//     Packed, to the end
//
func (p Payload) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, len(payloadMagic)+1+4*binary.MaxVarintLen64+len(p.Tree)+len(p.Packed))
	out = append(out, payloadMagic...)

	var flags byte
	if p.HasChecksum {
		flags |= flagChecksum
	}
	out = append(out, flags)
	out = binary.AppendUvarint(out, p.OriginalLength)
	out = binary.AppendUvarint(out, p.BitCount)
	if p.HasChecksum {
		out = binary.LittleEndian.AppendUint64(out, p.Checksum)
	}
	out = binary.AppendUvarint(out, uint64(len(p.Tree)))
	out = append(out, p.Tree...)
	out = append(out, p.Packed...)
	return out, nil
}

// UnmarshalBinary parses the output of MarshalBinary.  It checks the framing
// only; Decompress checks the contents.
func (p *Payload) UnmarshalBinary(raw []byte) error {
	if !bytes.HasPrefix(raw, []byte(payloadMagic)) {
		return fmt.Errorf("%w: bad magic", ErrMalformedPayload)
	}
	rest := raw[len(payloadMagic):]

	if len(rest) == 0 {
		return fmt.Errorf("%w: missing flags", ErrMalformedPayload)
	}
	flags := rest[0]
	rest = rest[1:]
	if flags&^knownFlags != 0 {
		return fmt.Errorf("%w: unknown flags %#02x", ErrMalformedPayload, flags&^knownFlags)
	}

	readUvarint := func(what string) (uint64, error) {
		v, n := binary.Uvarint(rest)
		if n <= 0 {
			return 0, fmt.Errorf("%w: bad %s", ErrMalformedPayload, what)
		}
		rest = rest[n:]
		return v, nil
	}

	var q Payload
	var err error
	if q.OriginalLength, err = readUvarint("original length"); err != nil {
		return err
	}
	if q.BitCount, err = readUvarint("bit count"); err != nil {
		return err
	}
	if flags&flagChecksum != 0 {
		if len(rest) < 8 {
			return fmt.Errorf("%w: short checksum", ErrMalformedPayload)
		}
		q.Checksum = binary.LittleEndian.Uint64(rest)
		q.HasChecksum = true
		rest = rest[8:]
	}
	treeLen, err := readUvarint("tree length")
	if err != nil {
		return err
	}
	if treeLen > uint64(len(rest)) {
		return fmt.Errorf("%w: tree length %d exceeds remaining %d bytes", ErrMalformedPayload, treeLen, len(rest))
	}
	q.Tree = append([]byte(nil), rest[:treeLen]...)
	q.Packed = append([]byte(nil), rest[treeLen:]...)

	*p = q
	return nil
}

var (
	_ encoding.BinaryMarshaler   = Payload{}
	_ encoding.BinaryUnmarshaler = (*Payload)(nil)
)
