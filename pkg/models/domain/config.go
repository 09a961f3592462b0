package domain

import "fmt"

// ConfigProfile names one audited platform connection from the
// profile registry file.
type ConfigProfile struct {
	Name     string
	Platform Platform
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Platform, c.Name)
}

// PlatformConfig carries the connection settings of one profile.
// Only the keys relevant to the profile's platform are set.
type PlatformConfig struct {
	Platform Platform
	Host     string
	User     string
	Token    string
	DSN      string
	Profile  string // cloud SDK profile name, when applicable
}
