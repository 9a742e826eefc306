package gomap

// UnmapOption is an option for controlling decoding.
type UnmapOption func(*unmapConfig)

type unmapConfig struct {
	strict bool
}

func newUnmapConfig(opts []UnmapOption) *unmapConfig {
	cfg := &unmapConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Strict makes properties and custom sub-structures that no field takes an
// error.
func Strict() UnmapOption {
	return func(cfg *unmapConfig) { cfg.strict = true }
}
