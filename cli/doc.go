// Package cli contains the command line interface for sigwave.
//
// # Commands
//
//   - patch (default): generate signal-group TCL from a YAML configuration
//     and splice it into a DVE session script
//   - emit: write the generated TCL streams to stdout
//   - check: validate and expand a configuration without emitting
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Examples
//
//	# Patch a session script
//	sigwave -c groups.yaml -s session.tcl -o patched.tcl
//
//	# Inspect the generated TCL without a host script
//	sigwave emit -c groups.yaml
//
//	# Validate a configuration with debug logging
//	sigwave check -c groups.yaml --log-level=debug
package cli
