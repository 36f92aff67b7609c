package graphdesc

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph"
)

var formats = map[string]gputypes.TextureFormat{
	"rgba8unorm":           gputypes.TextureFormatRGBA8Unorm,
	"bgra8unorm":           gputypes.TextureFormatBGRA8Unorm,
	"r8unorm":              gputypes.TextureFormatR8Unorm,
	"depth24plus-stencil8": gputypes.TextureFormatDepth24PlusStencil8,
}

var layouts = map[string]rendergraph.Layout{
	"":                       rendergraph.LayoutUndefined,
	"undefined":              rendergraph.LayoutUndefined,
	"general":                rendergraph.LayoutGeneral,
	"color-attachment":       rendergraph.LayoutColorAttachment,
	"depth-stencil":          rendergraph.LayoutDepthStencilAttachment,
	"depth-stencil-readonly": rendergraph.LayoutDepthStencilReadOnly,
	"shader-read":            rendergraph.LayoutShaderReadOnly,
	"transfer-src":           rendergraph.LayoutTransferSrc,
	"transfer-dst":           rendergraph.LayoutTransferDst,
	"present":                rendergraph.LayoutPresent,
}

// ParseFormat returns the texture format named s, as printed by
// rendergraph.FormatName.
func ParseFormat(s string) (gputypes.TextureFormat, error) {
	f, ok := formats[strings.ToLower(s)]
	if !ok {
		return gputypes.TextureFormatUndefined, fmt.Errorf("unknown texture format %q", s)
	}
	return f, nil
}

// ParseLayout returns the layout named s. The empty string is Undefined.
func ParseLayout(s string) (rendergraph.Layout, error) {
	l, ok := layouts[strings.ToLower(s)]
	if !ok {
		return rendergraph.LayoutUndefined, fmt.Errorf("unknown layout %q", s)
	}
	return l, nil
}

// parseLoad defaults to clear.
func parseLoad(s string) (gputypes.LoadOp, error) {
	switch strings.ToLower(s) {
	case "", "clear":
		return gputypes.LoadOpClear, nil
	case "load":
		return gputypes.LoadOpLoad, nil
	default:
		return gputypes.LoadOpClear, fmt.Errorf("unknown load op %q", s)
	}
}

// parseStore defaults to store.
func parseStore(s string) (gputypes.StoreOp, error) {
	switch strings.ToLower(s) {
	case "", "store":
		return gputypes.StoreOpStore, nil
	case "discard":
		return gputypes.StoreOpDiscard, nil
	default:
		return gputypes.StoreOpStore, fmt.Errorf("unknown store op %q", s)
	}
}
