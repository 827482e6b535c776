package network

import "errors"

var (
	ErrDuplicatePoint = errors.New("network: duplicate point")
	ErrUnknownSite    = errors.New("network: unknown site")
	ErrNotTagged      = errors.New("network: AoI membership not tagged")

	// ErrConsistency means the diagram and the routing rules disagree: a
	// bisector is missing, a shared vertex has no third site, a traversal
	// reached a site twice or a route could not make progress.
	ErrConsistency = errors.New("network: graph consistency fault")
)

const (
	// NoSite is returned by lookups that find nothing.
	NoSite = -1
	// Unreached marks a site not visited by the last traversal.
	Unreached = -1
)
