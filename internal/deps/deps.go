package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary voiceprep relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency. Path is the resolved
// executable when Available is true.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements in order.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, check(req))
	}
	return results
}

// Missing returns the required dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}

func check(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Path = path
	status.Available = true
	return status
}
