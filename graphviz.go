package rendergraph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gogpu/gputypes"
)

// ErrGraphvizNotFound is returned by DumpGraphviz when a PNG is requested
// and the dot executable is not on PATH.
var ErrGraphvizNotFound = errors.New("rendergraph: graphviz dot executable not found")

// Graphviz edge styles.
const (
	writeEdgeStyle  = `color="firebrick"`
	loadEdgeStyle   = `color="gray50", style=dashed`
	sampleEdgeStyle = `color="royalblue"`
)

// ExportGraphviz writes g as a DOT digraph: one box per pass, one record
// per texture version, one cluster per named subgraph. Write edges go from
// a pass to the version it produces; reads of a loaded attachment and
// shader reads go from the version to the pass.
//
// The output is a debugging aid, not a stable format.
func (g *Graph) ExportGraphviz(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("digraph rendergraph {\n")
	buf.WriteString("\trankdir=LR;\n")
	buf.WriteString("\tnode [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\tedge [fontname=\"Helvetica\", fontsize=9];\n")

	for sg := range g.subgraphs {
		indent := "\t"
		if sg != 0 {
			fmt.Fprintf(&buf, "\n\tsubgraph cluster_%d {\n", sg)
			fmt.Fprintf(&buf, "\t\tlabel=%s;\n", dotQuote(g.subgraphs[sg]))
			buf.WriteString("\t\tstyle=rounded;\n\t\tcolor=\"gray60\";\n")
			indent = "\t\t"
		}
		for i := range g.passes {
			if g.passes[i].subgraph == sg {
				fmt.Fprintf(&buf, "%spass_%d [shape=box, style=filled, fillcolor=\"lightgoldenrod\", label=%s];\n",
					indent, i, dotQuote(g.passes[i].name))
			}
		}
		for _, n := range g.reg.nodes {
			if n.subgraph == sg {
				g.writeTextureNode(&buf, indent, n)
			}
		}
		if sg != 0 {
			buf.WriteString("\t}\n")
		}
	}

	buf.WriteString("\n")
	for i := range g.passes {
		p := &g.passes[i]
		for _, u := range p.usages() {
			fmt.Fprintf(&buf, "\tpass_%d -> tex_%d [%s];\n", i, int(u.Out), writeEdgeStyle)
			if u.LoadOp == gputypes.LoadOpLoad {
				fmt.Fprintf(&buf, "\ttex_%d -> pass_%d [%s];\n", int(u.In), i, loadEdgeStyle)
			}
		}
		for _, s := range p.sampled {
			fmt.Fprintf(&buf, "\ttex_%d -> pass_%d [%s];\n", int(s), i, sampleEdgeStyle)
		}
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// writeTextureNode writes the record node of texture version n.
func (g *Graph) writeTextureNode(buf *bytes.Buffer, indent string, n textureNode) {
	e := &g.reg.entries[n.entry]
	style := ""
	if e.imported {
		style = `, style=filled, fillcolor="lightblue"`
	}
	fmt.Fprintf(buf, "%stex_%d [shape=record%s, label=\"{%s|v%d|%s}\"];\n",
		indent, int(n.id), style, escapeRecord(e.name), n.version, escapeRecord(e.resolved.String()))
}

// quoteEscaper escapes the characters that are special in DOT quoted
// strings.
var quoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// dotQuote returns s as a DOT quoted string.
func dotQuote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

// recordEscaper escapes the characters that are special in DOT record
// labels.
var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

func escapeRecord(s string) string {
	return recordEscaper.Replace(s)
}

// DumpGraphviz writes the DOT export of g to dotPath and, when pngPath is
// not empty, renders it with the external dot command.
func (g *Graph) DumpGraphviz(ctx context.Context, dotPath, pngPath string) error {
	f, err := os.Create(dotPath)
	if err != nil {
		return fmt.Errorf("rendergraph: create %s: %w", dotPath, err)
	}
	if err := g.ExportGraphviz(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("rendergraph: write %s: %w", dotPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("rendergraph: close %s: %w", dotPath, err)
	}
	if pngPath == "" {
		return nil
	}

	dot, err := exec.LookPath("dot")
	if err != nil {
		return ErrGraphvizNotFound
	}
	out, err := exec.CommandContext(ctx, dot, "-Tpng", "-o", pngPath, dotPath).CombinedOutput()
	if err != nil {
		return fmt.Errorf("rendergraph: dot -Tpng: %w: %s", err, strings.TrimSpace(string(out)))
	}
	Logger().Debug("rendergraph: rendered graphviz", "dot", dotPath, "png", pngPath)
	return nil
}
