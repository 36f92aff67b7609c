package graphdesc

import "github.com/gogpu/gputypes"

// Description is the format-agnostic model of a render graph.
type Description struct {
	Name    string    `toml:"name" yaml:"name"`
	Imports []Texture `toml:"import" yaml:"imports"`
	Passes  []Pass    `toml:"pass" yaml:"passes"`
}

// Texture declares an imported or transient texture.
//
// Size and format either come from the fixed fields, or mirror another
// texture: Match mirrors every field, MatchSize mirrors width and height
// and takes Format from this declaration.
type Texture struct {
	Name        string `toml:"name" yaml:"name"`
	Format      string `toml:"format" yaml:"format"`
	Width       uint32 `toml:"width" yaml:"width"`
	Height      uint32 `toml:"height" yaml:"height"`
	Samples     uint32 `toml:"samples" yaml:"samples"`
	Match       string `toml:"match" yaml:"match"`
	MatchSize   string `toml:"match_size" yaml:"match_size"`
	FinalLayout string `toml:"final_layout" yaml:"final_layout"`
}

// Pass declares one pass and its attachments.
type Pass struct {
	Name         string       `toml:"name" yaml:"name"`
	Subgraph     string       `toml:"subgraph" yaml:"subgraph"`
	Create       []Texture    `toml:"create" yaml:"create"`
	Sampled      []string     `toml:"sampled" yaml:"sampled"`
	DepthStencil *Attachment  `toml:"depth_stencil" yaml:"depth_stencil"`
	Colors       []Attachment `toml:"color" yaml:"colors"`
	Resolves     []Attachment `toml:"resolve" yaml:"resolves"`
}

// Attachment declares one attachment of a pass.
type Attachment struct {
	Texture string         `toml:"texture" yaml:"texture"`
	Load    string         `toml:"load" yaml:"load"`
	Store   string         `toml:"store" yaml:"store"`
	Clear   gputypes.Color `toml:"clear" yaml:"clear"`
	Depth   float32        `toml:"depth" yaml:"depth"`
	Stencil uint32         `toml:"stencil" yaml:"stencil"`
}
