package util

import (
	"os"
	"strings"
)

// GetInstanceID names this process in metrics labels
func GetInstanceID() string {
	if id := os.Getenv("SCHEDSIM_INSTANCE_ID"); id != "" {
		return id
	}
	// On Linux, the machine ID is stored in /etc/machine-id
	const machineIDPath = "/etc/machine-id"
	if data, err := os.ReadFile(machineIDPath); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "unknown-instance"
}
