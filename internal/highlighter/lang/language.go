package lang

import (
	"fmt"
	"io/fs"

	"github.com/bethropolis/inkwell/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// QueryFS is the filesystem interface for accessing embedded queries
var QueryFS fs.FS

// Language represents a code block language with its syntax highlighting configuration
type Language struct {
	// Name is the display name of the language
	Name string

	// TreeSitterLang is the tree-sitter language instance
	TreeSitterLang *sitter.Language

	// Aliases are the info-string names a code block may use, e.g. "go" or "golang"
	Aliases []string

	// QueryPath is the directory of the highlight query under queries/
	QueryPath string
}

// GetQuery loads and returns the highlight query for this language
func (l *Language) GetQuery() []byte {
	if QueryFS == nil {
		logger.Warnf("QueryFS not set - cannot load queries")
		return nil
	}

	if l.QueryPath == "" {
		logger.Warnf("No query path defined for language %s", l.Name)
		return nil
	}

	queryPath := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
	query, err := fs.ReadFile(QueryFS, queryPath)
	if err != nil {
		logger.Warnf("Failed to load query for language %s: %v", l.Name, err)
		return nil
	}
	logger.Debugf("Loaded query from %s for %s (%d bytes)", queryPath, l.Name, len(query))
	return query
}
