// internal/portref/parser.go
package portref

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single node id or port name.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// isValidSegmentName rejects names that are technically matched but confusing.
func isValidSegmentName(name string) bool {
	return strings.Trim(name, "-") != ""
}

// Parse creates a Ref from its canonical string representation.
func Parse(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("port reference cannot be empty")
	}

	segments := strings.Split(raw, ".")
	if len(segments) != 2 {
		return Ref{}, fmt.Errorf("port reference %q must have the form node.port", raw)
	}

	for _, segment := range segments {
		if segment == "" {
			return Ref{}, fmt.Errorf("port reference %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return Ref{}, fmt.Errorf("invalid segment format: %q", segment)
		}
		if !isValidSegmentName(segment) {
			return Ref{}, fmt.Errorf("invalid segment name: %q", segment)
		}
	}

	return Ref{Node: segments[0], Port: segments[1]}, nil
}

// ValidNodeID reports whether id can appear as the node segment of a Ref.
func ValidNodeID(id string) bool {
	return segmentRegex.MatchString(id) && isValidSegmentName(id)
}
