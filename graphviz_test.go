package rendergraph_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend/headless"
)

func TestExportGraphviz(t *testing.T) {
	dev := headless.NewDevice()
	g := rendergraph.New(dev)
	back := g.ImportTexture("backbuffer", dev.NewTexture("swapchain", rgba(128, 128)), rendergraph.LayoutPresent)

	var shadow rendergraph.TextureVersionID
	g.BeginSubgraph("shadows")
	g.AddPass(&rendergraph.FuncPass{
		PassName: "shadow",
		SetupFunc: func(b *rendergraph.Builder, _ *rendergraph.Blackboard, _ rendergraph.PassID) {
			s := b.CreateTexture("shadow|map", rendergraph.SpecOf(rgba(64, 64)), rendergraph.LayoutUndefined)
			shadow = b.AddColorAttachment(s, gputypes.LoadOpClear, gputypes.StoreOpStore, rendergraph.ClearValue{})
		},
	})
	g.EndSubgraph()
	g.AddPass(&rendergraph.FuncPass{
		PassName: "lighting",
		SetupFunc: func(b *rendergraph.Builder, _ *rendergraph.Blackboard, _ rendergraph.PassID) {
			b.AddSampledTexture(shadow)
			b.AddColorAttachment(back, gputypes.LoadOpLoad, gputypes.StoreOpStore, rendergraph.ClearValue{})
		},
	})

	var buf bytes.Buffer
	if err := g.ExportGraphviz(&buf); err != nil {
		t.Fatalf("ExportGraphviz() error = %v", err)
	}
	dot := buf.String()

	// ids: backbuffer v0 = 0, shadow v0 = 1, shadow v1 = 2, backbuffer v1 = 3.
	want := []string{
		"digraph rendergraph {",
		"subgraph cluster_1 {",
		`label="shadows";`,
		`pass_0 [shape=box`,
		`pass_1 [shape=box`,
		`tex_0 [shape=record, style=filled, fillcolor="lightblue"`,
		`label="{shadow\|map|v1|64x64 rgba8unorm x1}"`,
		`pass_0 -> tex_2 [color="firebrick"];`,
		`pass_1 -> tex_3 [color="firebrick"];`,
		`tex_0 -> pass_1 [color="gray50", style=dashed];`,
		`tex_2 -> pass_1 [color="royalblue"];`,
	}
	for _, w := range want {
		if !strings.Contains(dot, w) {
			t.Errorf("DOT output missing %q\n%s", w, dot)
		}
	}
	if strings.Contains(dot, "tex_1 -> pass_0") {
		t.Error("cleared attachment has a read edge")
	}

	cluster := dot[strings.Index(dot, "subgraph cluster_1"):]
	cluster = cluster[:strings.Index(cluster, "\t}\n")]
	if !strings.Contains(cluster, "pass_0 ") || strings.Contains(cluster, "pass_1 ") {
		t.Errorf("cluster_1 does not hold exactly the shadow pass:\n%s", cluster)
	}
}

func TestExportGraphvizQuoting(t *testing.T) {
	dev := headless.NewDevice()
	g := rendergraph.New(dev)
	back := g.ImportTexture("backbuffer", dev.NewTexture("swapchain", rgba(64, 64)), rendergraph.LayoutPresent)

	g.BeginSubgraph("post\u00a0fx")
	g.AddPass(&rendergraph.FuncPass{
		PassName: "say \"hi\"\nglow\x01",
		SetupFunc: func(b *rendergraph.Builder, _ *rendergraph.Blackboard, _ rendergraph.PassID) {
			b.AddColorAttachment(back, gputypes.LoadOpClear, gputypes.StoreOpStore, rendergraph.ClearValue{})
		},
	})
	g.EndSubgraph()

	var buf bytes.Buffer
	if err := g.ExportGraphviz(&buf); err != nil {
		t.Fatalf("ExportGraphviz() error = %v", err)
	}
	dot := buf.String()
	for _, want := range []string{
		"label=\"post\u00a0fx\";",
		`label="say \"hi\"\nglow` + "\x01" + `"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
	for _, bad := range []string{`\u00a0`, `\x01`} {
		if strings.Contains(dot, bad) {
			t.Errorf("DOT output contains Go escape %s:\n%s", bad, dot)
		}
	}
}

func TestDumpGraphviz(t *testing.T) {
	dev := headless.NewDevice()
	g := rendergraph.New(dev)
	back := g.ImportTexture("backbuffer", dev.NewTexture("swapchain", rgba(8, 8)), rendergraph.LayoutPresent)
	g.AddPass(&rendergraph.FuncPass{
		PassName: "clear",
		SetupFunc: func(b *rendergraph.Builder, _ *rendergraph.Blackboard, _ rendergraph.PassID) {
			b.AddColorAttachment(back, gputypes.LoadOpClear, gputypes.StoreOpStore, rendergraph.ClearValue{})
		},
	})

	dotPath := filepath.Join(t.TempDir(), "graph.dot")
	if err := g.DumpGraphviz(context.Background(), dotPath, ""); err != nil {
		t.Fatalf("DumpGraphviz() error = %v", err)
	}
	data, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph rendergraph {") {
		t.Errorf("dot file = %q, want a digraph", data)
	}

	if err := g.DumpGraphviz(context.Background(), filepath.Join(t.TempDir(), "missing", "g.dot"), ""); err == nil {
		t.Error("DumpGraphviz() into a missing directory succeeded")
	}
}
