package random

// Source names accepted by NewSource
const (
	SourceCrypto = "crypto"
	SourceKeccak = "keccak"
)

// Error messages
const (
	ErrMsgReadEntropy   = "failed to read entropy"
	ErrMsgUnknownSource = "unknown random source"
)
