package cluster

import "time"

// Opts are the parameters forwarded to the FastPG clustering script. They are
// passed through, not interpreted, by this package.
type Opts struct {
	// Neighbors is the number of nearest neighbors used when building the
	// kNN graph.
	Neighbors int
	// Threads is the number of cpus used during the kNN part of clustering.
	Threads int
	// Method adds a column with the method name to the output files.
	Method bool
	// Timeout bounds the external clustering run. Zero means no limit,
	// matching the original wrapper which blocked until the script exited.
	Timeout time.Duration
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	Neighbors: 30, // Go: -neighbors, Python: -k/--neighbors
	Threads:   1,  // Go: -num-threads, Python: -n/--num-threads
}
