// Package protocol owns the TPG36x wire contract and parsing primitives.
//
// Ownership boundary:
// - command framing and control bytes
// - response tokenization
// - controller error-word decoding
package protocol
