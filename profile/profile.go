package profile

// Config functions return all supported profiler configuration parameters.
type Config func() (mode, path string, quiet bool)

// Make creates a Config from the given parameters.
func Make(mode, path string, quiet bool) Config {
	return func() (string, string, bool) {
		return mode, path, quiet
	}
}

// Start initializes the profiler and returns an interface for stopping it.
//
// Mode specifies the profiler mode to use, and path specifies the output
// directory where profiling data will be written.
//
// If build tag pprof is unset or mode is empty, Start returns a no-op
// implementation. Both Start and Stop are always safely callable.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

type ignore struct{}

func (ignore) Stop() {}
