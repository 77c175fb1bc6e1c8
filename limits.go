// FILE: lixenwraith/conftree/limits.go
package conftree

const (
	// MaxDepth caps the number of segments in a path and the number of
	// nested containers a document may open.
	MaxDepth = 20

	// MaxArraySize caps the slot count of a single array.
	MaxArraySize = 65536

	// MaxErrorLen bounds Error.Msg. Longer messages are replaced by msgTooLong.
	MaxErrorLen = 256

	msgTooLong = "message too long"

	// MaxAliasNodes caps the nodes a single YAML source may emit through
	// alias expansion.
	MaxAliasNodes = 1 << 16

	// DefaultMaxDocumentSize limits document reads when no explicit limit is set.
	DefaultMaxDocumentSize = 10 << 20
)
