package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/reconquest/regexputil-go"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is one fenced d2 code block found in a document. Start and End
// delimit the whole fence in the source, opening and closing lines included,
// so a replacement can take its exact place.
type Block struct {
	Title  string
	Marked bool
	Code   string
	Start  int
	End    int
}

var (
	// ```d2 render? (title <text>)?
	reBlockInfo = regexp.MustCompile(
		`^d2(?:\s+(?P<marker>render))?(?:\s+title\s+(?P<title>\S.*?))?\s*$`,
	)

	reClosingFence = regexp.MustCompile("^[ \t]*(`{3,}|~{3,})[ \t]*$")
)

// FindBlocks locates every fenced d2 block and its byte span.
func FindBlocks(source []byte) []Block {
	document := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []Block
	_ = ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok || string(fence.Language(source)) != "d2" {
			return ast.WalkContinue, nil
		}

		marked, title := parseInfo(string(fence.Info.Segment.Value(source)))

		innerEnd := lineEnd(source, fence.Info.Segment.Stop)
		if innerEnd < len(source) {
			innerEnd++
		}

		var code strings.Builder
		for i := 0; i < fence.Lines().Len(); i++ {
			line := fence.Lines().At(i)
			code.Write(line.Value(source))
			innerEnd = line.Stop
		}

		blocks = append(blocks, Block{
			Title:  title,
			Marked: marked,
			Code:   code.String(),
			Start:  lineStart(source, fence.Info.Segment.Start),
			End:    blockEnd(source, innerEnd),
		})
		return ast.WalkContinue, nil
	})

	return blocks
}

// parseInfo reads the render marker and title off a fence info line. Info
// lines with unexpected extra words still count as plain d2 blocks.
func parseInfo(info string) (bool, string) {
	groups := reBlockInfo.FindStringSubmatch(strings.TrimSpace(info))
	if groups == nil {
		return false, ""
	}
	marker := regexputil.Subexp(reBlockInfo, groups, "marker")
	title := regexputil.Subexp(reBlockInfo, groups, "title")
	return marker != "", title
}

// blockEnd extends the inner code span over the closing fence line when one
// follows; a fence cut off by end of input keeps its inner span.
func blockEnd(source []byte, innerEnd int) int {
	stop := lineEnd(source, innerEnd)
	if !reClosingFence.Match(source[innerEnd:stop]) {
		return innerEnd
	}
	if stop < len(source) {
		return stop + 1
	}
	return stop
}

func lineStart(source []byte, offset int) int {
	return bytes.LastIndexByte(source[:offset], '\n') + 1
}

func lineEnd(source []byte, offset int) int {
	if i := bytes.IndexByte(source[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(source)
}
