package manifest

import (
	"strings"

	"github.com/quantmind-br/motionscan/internal/utils"
)

// DefaultIdentifierExtension replaces the archive extension in identifiers
const DefaultIdentifierExtension = ".motion"

// identifierReplacements are applied in order, each to every occurrence
var identifierReplacements = []string{"-", " ", "(", ")"}

// NormalizeIdentifier turns an archive path into a manifest identifier.
// The extension becomes ext and hyphens, spaces and parentheses become
// underscores. It never touches the filesystem.
func NormalizeIdentifier(path, ext string) string {
	if ext == "" {
		ext = DefaultIdentifierExtension
	}
	id := utils.ReplaceExt(path, ext)
	for _, old := range identifierReplacements {
		id = strings.ReplaceAll(id, old, "_")
	}
	return id
}
