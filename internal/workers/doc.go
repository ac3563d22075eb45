/*
Package workers sizes worker pools from the CPUs actually available to
the process.

In containers, cgroup CPU limits make runtime.NumCPU misleading: it
reports the host's cores. Go 1.19+ sets GOMAXPROCS from the container
limit, so this package derives worker counts from GOMAXPROCS instead.

Usage:

	// I/O-bound work (header validation, file stats)
	n := workers.ForIO(16) // max 16 workers

	// CPU-bound work (decoding, encoding)
	n := workers.ForCPU(8) // max 8 workers

Operators can override the calculation with the SCAN_WORKERS
environment variable:

	SCAN_WORKERS=4 photo-viewer

Always pass a limit: the pools here fan out over directory entries, and
a 64-core host with no cap would open 128 files at once against
filesystems (NFS mounts especially) that respond badly to that.
*/
package workers
