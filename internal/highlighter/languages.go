// internal/highlighter/languages.go
package highlighter

import (
	"embed"
	"sync"

	"github.com/bethropolis/inkwell/internal/highlighter/lang"
	"github.com/bethropolis/inkwell/internal/logger"

	// Import the grammar bindings
	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript" // JS parser used for JS and JSON
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

// RegisterLanguages installs the built-in code block languages. Safe to call more than once.
func RegisterLanguages() {
	registerOnce.Do(registerLanguages)
}

func registerLanguages() {
	if lang.QueryFS == nil {
		lang.QueryFS = embeddedQueries
	}

	logger.Debugf("Registering languages...")

	lang.Register(&lang.Language{
		Name:           "Go",
		TreeSitterLang: gosrc.GetLanguage(),
		Aliases:        []string{"go", "golang"},
		QueryPath:      "go",
	})

	lang.Register(&lang.Language{
		Name:           "Python",
		TreeSitterLang: pythonsrc.GetLanguage(),
		Aliases:        []string{"python", "py"},
		QueryPath:      "python",
	})

	lang.Register(&lang.Language{
		Name:           "JavaScript",
		TreeSitterLang: jssrc.GetLanguage(),
		Aliases:        []string{"javascript", "js"},
		QueryPath:      "javascript",
	})

	lang.Register(&lang.Language{
		Name:           "JSON",
		TreeSitterLang: jssrc.GetLanguage(),
		Aliases:        []string{"json"},
		QueryPath:      "json",
	})

	lang.Register(&lang.Language{
		Name:           "Rust",
		TreeSitterLang: rustsrc.GetLanguage(),
		Aliases:        []string{"rust", "rs"},
		QueryPath:      "rust",
	})

	logger.Debugf("Registration complete. Registered %d languages.", len(lang.GetAll()))
}
