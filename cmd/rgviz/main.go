// Command rgviz compiles a render graph description, records frames on a
// backend and exports the graph as Graphviz DOT.
//
// Usage:
//
//	rgviz [flags] graph.toml|graph.yaml
//
// Example:
//
//	rgviz -dot deferred.dot -png deferred.png -resize 1920x1080 deferred.toml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend"
	_ "github.com/gogpu/rendergraph/backend/headless"
	_ "github.com/gogpu/rendergraph/backend/native"
	"github.com/gogpu/rendergraph/internal/graphdesc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// config holds the parsed command line.
type config struct {
	backend string
	dot     string
	png     string
	frames  int
	resize  [2]uint32
	verbose bool
	path    string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("rgviz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfg    config
		resize string
	)
	fs.StringVar(&cfg.backend, "backend", "", "backend name (default: best available; see -list)")
	fs.StringVar(&cfg.dot, "dot", "", "write the graph as DOT to this file")
	fs.StringVar(&cfg.png, "png", "", "render the DOT file to PNG with graphviz (requires -dot)")
	fs.IntVar(&cfg.frames, "frames", 1, "number of frames to record")
	fs.StringVar(&resize, "resize", "", "reimport every imported texture at WxH and record again")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	list := fs.Bool("list", false, "list available backends and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *list {
		return nil, errListed
	}
	if fs.NArg() != 1 {
		return nil, errors.New("expected exactly one description file")
	}
	cfg.path = fs.Arg(0)
	if cfg.png != "" && cfg.dot == "" {
		return nil, errors.New("-png requires -dot")
	}
	if cfg.frames < 1 {
		return nil, fmt.Errorf("-frames must be positive, got %d", cfg.frames)
	}
	if resize != "" {
		w, h, err := parseSize(resize)
		if err != nil {
			return nil, err
		}
		cfg.resize = [2]uint32{w, h}
	}
	return &cfg, nil
}

var errListed = errors.New("listed")

func parseSize(s string) (uint32, uint32, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.ParseUint(ws, 10, 32)
	if err != nil || w == 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	h, err := strconv.ParseUint(hs, 10, 32)
	if err != nil || h == 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return uint32(w), uint32(h), nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, errListed) {
		for _, name := range backend.Available() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "rgviz: %v\n", err)
		}
		return 2
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	rendergraph.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer rendergraph.SetLogger(nil)

	if err := visualize(context.Background(), cfg, stdout); err != nil {
		fmt.Fprintf(stderr, "rgviz: %v\n", err)
		return 1
	}
	return 0
}

func visualize(ctx context.Context, cfg *config, stdout io.Writer) error {
	desc, err := graphdesc.Load(cfg.path)
	if err != nil {
		return err
	}

	b, err := backend.Open(cfg.backend)
	if err != nil {
		return fmt.Errorf("open backend %q: %w", cfg.backend, err)
	}
	defer b.Close()

	dev := b.Device()
	g := rendergraph.New(dev)
	defer g.Destroy()

	built, err := graphdesc.Build(g, desc, func(name string, spec rendergraph.TextureSpec) (rendergraph.Texture, error) {
		return dev.CreateTexture("import/"+name, spec)
	})
	if err != nil {
		return err
	}
	defer destroyAll(built.Imported)

	if err := runFrames(b, g, cfg.frames); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "graph %q on %s\n", desc.Name, b.Name())
	printSummary(stdout, g)

	if cfg.resize != [2]uint32{} {
		if err := resize(g, dev, desc, built, cfg.resize[0], cfg.resize[1]); err != nil {
			return err
		}
		if err := runFrames(b, g, cfg.frames); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nafter resize to %dx%d\n", cfg.resize[0], cfg.resize[1])
		printSummary(stdout, g)
	}

	if cfg.dot != "" {
		if err := g.DumpGraphviz(ctx, cfg.dot, cfg.png); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nwrote %s\n", cfg.dot)
		if cfg.png != "" {
			fmt.Fprintf(stdout, "wrote %s\n", cfg.png)
		}
	}
	return nil
}

func runFrames(b backend.RenderBackend, g *rendergraph.Graph, frames int) error {
	for i := range frames {
		if err := b.RunFrame(g); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

// resize replaces every imported texture with one of the new size, as a
// host application does when its window is resized.
func resize(g *rendergraph.Graph, dev rendergraph.RenderDevice, desc *graphdesc.Description, built *graphdesc.Built, w, h uint32) error {
	for _, imp := range desc.Imports {
		old := built.Imported[imp.Name]
		spec := old.Spec()
		spec.Width, spec.Height = w, h
		tex, err := dev.CreateTexture("import/"+imp.Name, spec)
		if err != nil {
			return fmt.Errorf("resize %q: %w", imp.Name, err)
		}
		g.ReimportTexture(built.Textures[imp.Name], tex)
		old.Destroy()
		built.Imported[imp.Name] = tex
	}
	return nil
}

func destroyAll(textures map[string]rendergraph.Texture) {
	for _, t := range textures {
		t.Destroy()
	}
}

func printSummary(w io.Writer, g *rendergraph.Graph) {
	for i := range g.PassCount() {
		id := rendergraph.PassID(i)
		bp := g.BuiltPass(id)
		fmt.Fprintf(w, "  pass %d %-12s %dx%d\n", i, g.PassName(id), bp.Width, bp.Height)
		for k, a := range bp.Description.Attachments {
			fmt.Fprintf(w, "    %d %-13s %-20s %s -> %s\n",
				k, a.Type, rendergraph.FormatName(a.Format), a.InitialLayout, a.FinalLayout)
		}
	}
}
