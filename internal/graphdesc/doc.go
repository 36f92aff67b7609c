// Package graphdesc defines a declarative, file-based description of a
// render graph and builds it into a rendergraph.Graph.
//
// Descriptions are written in TOML or YAML and are used by the rgviz tool
// to compile and visualize graphs without writing Go passes. Textures are
// referenced by name; every attachment advances the named texture to its
// next version, exactly as the Builder does.
package graphdesc
