package rendergraph

// Option configures a Graph during creation.
//
// Example:
//
//	bb := rendergraph.NewBlackboard()
//	g := rendergraph.New(device, rendergraph.WithBlackboard(bb))
type Option func(*options)

// options holds optional configuration for Graph creation.
type options struct {
	blackboard    *Blackboard
	genericLayout Layout
	flipViewport  bool
	labelPrefix   string
}

// defaultOptions returns the default graph options.
func defaultOptions() options {
	return options{
		blackboard:    nil, // Will be created if nil
		genericLayout: LayoutGeneral,
		flipViewport:  true,
		labelPrefix:   "rg",
	}
}

// WithBlackboard injects the blackboard shared by the graph's passes.
// Use this when state must be registered before passes are added.
func WithBlackboard(bb *Blackboard) Option {
	return func(o *options) {
		o.blackboard = bb
	}
}

// WithGenericLayout sets the final layout used for attachments that have no
// later usage and whose texture declares no final layout.
func WithGenericLayout(l Layout) Option {
	return func(o *options) {
		o.genericLayout = l
	}
}

// WithViewportFlip controls whether Execute sets a vertically flipped
// viewport (Y = height, Height = -height). Enabled by default.
func WithViewportFlip(flip bool) Option {
	return func(o *options) {
		o.flipViewport = flip
	}
}

// WithLabelPrefix sets the prefix of the debug labels given to device
// objects created by the graph.
func WithLabelPrefix(prefix string) Option {
	return func(o *options) {
		o.labelPrefix = prefix
	}
}
