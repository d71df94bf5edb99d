// Package graphviz renders a repository's branch/commit history as a
// Graphviz graph for `lit log --graph` (spec.md's graph-rendering
// "Out of scope" collaborator, enriched per SPEC_FULL.md's domain-stack
// expansion). Adapted from cmd/gitgraph/gitgraph.go's GitGraph.
// createGraphEdges, retargeted from git-fast-export commit records onto
// lit's own branch/commit object model; emicklei/dot still builds the
// graph, goccy/go-graphviz now renders it (the teacher shelled out to the
// `dot` binary via os/exec instead).
package graphviz

import (
	"bytes"
	"fmt"

	"github.com/emicklei/dot"
	graphviz "github.com/goccy/go-graphviz"

	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/repository"
)

const op = "graphviz"

// nodeKey uniquely identifies a commit node across branches sharing
// commit identity (rebase, create-from) so they render as one node.
func nodeKey(c *branch.Branch, idx int) string {
	return c.Commits.At(idx).Hash.Hex()
}

// BuildGraph constructs a directed graph: one node per distinct commit
// (labeled with its short hash and message), one edge per consecutive
// pair within a branch's history, labeled with the branch name. A
// branch's head commit is styled distinctly.
func BuildGraph(repo *repository.Repository) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	nodes := make(map[string]dot.Node)

	nodeFor := func(b *branch.Branch, idx int) dot.Node {
		key := nodeKey(b, idx)
		if n, ok := nodes[key]; ok {
			return n
		}
		c := b.Commits.At(idx)
		label := fmt.Sprintf("%s\n%s", c.Hash.Hex()[:8], c.Message)
		n := g.Node(key).Label(label)
		nodes[key] = n
		return n
	}

	for _, b := range repo.Branches.Slice() {
		for i := 0; i < b.Commits.Len(); i++ {
			n := nodeFor(b, i)
			if i == b.Head {
				n.Attr("style", "filled").Attr("fillcolor", "lightyellow")
			}
			if i > 0 {
				parent := nodeFor(b, i-1)
				g.Edge(parent, n, b.Name)
			}
		}
	}
	return g
}

// RenderDOT returns the Graphviz DOT source for repo's branch/commit graph.
func RenderDOT(repo *repository.Repository) string {
	return BuildGraph(repo).String()
}

// RenderPNG renders repo's branch/commit graph to a PNG file at path.
func RenderPNG(repo *repository.Repository, path string) error {
	gv := graphviz.New()
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(RenderDOT(repo)))
	if err != nil {
		return literr.Wrap(op, literr.IOFailure, "parse graph source", err)
	}
	defer graph.Close()

	if err := gv.RenderFilename(graph, graphviz.PNG, path); err != nil {
		return literr.Wrap(op, literr.IOFailure, "render graph to PNG", err)
	}
	return nil
}

// RenderPNGBytes renders repo's branch/commit graph to PNG bytes.
func RenderPNGBytes(repo *repository.Repository) ([]byte, error) {
	gv := graphviz.New()
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(RenderDOT(repo)))
	if err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "parse graph source", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(graph, graphviz.PNG, &buf); err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "render graph to PNG", err)
	}
	return buf.Bytes(), nil
}
