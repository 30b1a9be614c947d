// Package tcl renders a resolved group forest into DVE session TCL and
// splices the result into a host session script.
//
// Emission produces three ordered streams: group creation with signal and
// radix commands, view insertion, and group collapsing. Signal commands are
// chunked so no emitted line exceeds the configured limit, with dividers
// forcing chunk boundaries.
//
// The package knows nothing of the host document beyond its two marker
// lines and performs no file I/O.
package tcl
