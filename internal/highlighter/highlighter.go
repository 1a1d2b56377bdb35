package highlighter

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/inkwell/internal/highlighter/lang"
	"github.com/bethropolis/inkwell/internal/highlighter/utils"
	"github.com/bethropolis/inkwell/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// Span is a highlighted byte range of the source.
type Span struct {
	Start int
	End   int
	Style string
}

// Highlighter service manages parsing and querying syntax trees.
// A tree-sitter parser is not safe for concurrent use, so calls are serialized.
type Highlighter struct {
	mu      sync.Mutex
	parser  *sitter.Parser
	queries map[*lang.Language]*sitter.Query
}

// NewHighlighter creates a new highlighter instance.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[*lang.Language]*sitter.Query),
	}
}

func (h *Highlighter) query(l *lang.Language) (*sitter.Query, error) {
	if q, ok := h.queries[l]; ok {
		return q, nil
	}
	src := l.GetQuery()
	if src == nil {
		return nil, fmt.Errorf("no highlight query for %s", l.Name)
	}
	q, err := sitter.NewQuery(src, l.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("query parse failed for %s: %w", l.Name, err)
	}
	h.queries[l] = q
	return q, nil
}

// Highlight parses source and returns non-overlapping spans ordered by offset.
// When two captures overlap the one starting first wins.
func (h *Highlighter) Highlight(ctx context.Context, source []byte, l *lang.Language) ([]Span, error) {
	if l == nil {
		return nil, fmt.Errorf("no language provided for highlighting")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	q, err := h.query(l)
	if err != nil {
		return nil, err
	}
	h.parser.SetLanguage(l.TreeSitterLang)
	tree, err := h.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		logger.Errorf("Tree-sitter parsing error: %v", err)
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var spans []Span
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			start, end := int(capture.Node.StartByte()), int(capture.Node.EndByte())
			if end <= start || end > len(source) {
				continue
			}
			spans = append(spans, Span{
				Start: start,
				End:   end,
				Style: utils.CaptureNameToStyleName(q.CaptureNameForId(capture.Index)),
			})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	out := spans[:0]
	last := 0
	for _, s := range spans {
		if s.Start < last {
			continue
		}
		out = append(out, s)
		last = s.End
	}
	logger.DebugTagf("highlighter", "Highlight: %s produced %d spans", l.Name, len(out))
	return out, nil
}
