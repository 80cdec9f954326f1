// Package huffpack implements a lossless byte compressor based on Huffman
// codes.
//
// Compress counts the bytes of its input, builds a Huffman tree with a
// min-ordered priority queue (see package pqueue), derives a prefix-free code
// from the tree, and packs the input into a bitstream.  The resulting Payload
// carries a descriptor of the tree, so Decompress needs nothing else to
// invert it.
//
// The pieces are exported individually as well: CountFrequencies, BuildTree,
// DeriveCodes, Encode, Decode, and the tree descriptor functions.  A
// table-driven Decoder and CanonicalCodes support canonical Huffman codes.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffpack
