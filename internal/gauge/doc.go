// Package gauge owns the controller side of one connection.
//
// Ownership boundary:
// - ENQ/ACK/NAK handshake (Client)
// - mnemonic operations and their field interpretation (Controller)
//
// One command is in flight per connection at any time; Client serializes
// whole exchanges, nested error retrieval included.
package gauge
