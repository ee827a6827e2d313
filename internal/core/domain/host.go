package domain

// HostID identifies the authoring application a plugin runs inside of
type HostID string

// Known authoring hosts. Plugins may declare support for hosts outside
// this list; the pipeline treats HostID as an open vocabulary.
const (
	HostMaya       HostID = "maya"
	HostHoudini    HostID = "houdini"
	HostNuke       HostID = "nuke"
	HostStandalone HostID = "standalone"
)

// KnownHosts returns the hosts the tool ships first-class support for
func KnownHosts() []HostID {
	return []HostID{HostMaya, HostHoudini, HostNuke, HostStandalone}
}

// String returns the string representation of the HostID
func (h HostID) String() string {
	return string(h)
}
