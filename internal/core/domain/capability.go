package domain

import (
	"maps"
	"slices"
)

// Capability names used by the download agent.
const (
	CapSetGID = "CAP_SETGID"
	CapSetUID = "CAP_SETUID"
)

// FullCapabilityMask is the effective mask of a process holding every
// capability up to CAP_AUDIT_READ.
const FullCapabilityMask uint64 = 0x3FFFFFFFFF

// capabilityNames maps capability bit positions to their names.
var capabilityNames = [...]string{
	"CAP_CHOWN",
	"CAP_DAC_OVERRIDE",
	"CAP_DAC_READ_SEARCH",
	"CAP_FOWNER",
	"CAP_FSETID",
	"CAP_KILL",
	"CAP_SETGID",
	"CAP_SETUID",
	"CAP_SETPCAP",
	"CAP_LINUX_IMMUTABLE",
	"CAP_NET_BIND_SERVICE",
	"CAP_NET_BROADCAST",
	"CAP_NET_ADMIN",
	"CAP_NET_RAW",
	"CAP_IPC_LOCK",
	"CAP_IPC_OWNER",
	"CAP_SYS_MODULE",
	"CAP_SYS_RAWIO",
	"CAP_SYS_CHROOT",
	"CAP_SYS_PTRACE",
	"CAP_SYS_PACCT",
	"CAP_SYS_ADMIN",
	"CAP_SYS_BOOT",
	"CAP_SYS_NICE",
	"CAP_SYS_RESOURCE",
	"CAP_SYS_TIME",
	"CAP_SYS_TTY_CONFIG",
	"CAP_MKNOD",
	"CAP_LEASE",
	"CAP_AUDIT_WRITE",
	"CAP_AUDIT_CONTROL",
	"CAP_SETFCAP",
	"CAP_MAC_OVERRIDE",
	"CAP_MAC_ADMIN",
	"CAP_SYSLOG",
	"CAP_WAKE_ALARM",
	"CAP_BLOCK_SUSPEND",
	"CAP_AUDIT_READ",
}

// CapabilityName returns the name of the capability at bit, if known.
func CapabilityName(bit int) (string, bool) {
	if bit < 0 || bit >= len(capabilityNames) {
		return "", false
	}
	return capabilityNames[bit], true
}

// KnownCapabilities returns the full capability vocabulary.
func KnownCapabilities() []string {
	return slices.Clone(capabilityNames[:])
}

// CapabilitySet is the decoded effective capability set of a process.
type CapabilitySet struct {
	PID int
	// Effective holds the names of the known capabilities that are set.
	Effective map[string]struct{}
	// UnknownBits holds set bit positions that have no known name.
	UnknownBits map[int]struct{}
}

// DecodeCapabilities decodes an effective capability mask.
// The full mask decodes to the complete vocabulary regardless of bits
// above the known table.
func DecodeCapabilities(pid int, mask uint64) CapabilitySet {
	set := CapabilitySet{
		PID:         pid,
		Effective:   make(map[string]struct{}),
		UnknownBits: make(map[int]struct{}),
	}

	if mask == FullCapabilityMask {
		for _, name := range capabilityNames {
			set.Effective[name] = struct{}{}
		}
		return set
	}

	for bit := range 64 {
		if mask&(1<<uint(bit)) == 0 {
			continue
		}
		if name, ok := CapabilityName(bit); ok {
			set.Effective[name] = struct{}{}
		} else {
			set.UnknownBits[bit] = struct{}{}
		}
	}
	return set
}

// Has reports whether every required capability is effective.
func (s CapabilitySet) Has(required ...string) bool {
	for _, name := range required {
		if _, ok := s.Effective[name]; !ok {
			return false
		}
	}
	return true
}

// Names returns the effective capability names in sorted order.
func (s CapabilitySet) Names() []string {
	names := slices.AppendSeq(make([]string, 0, len(s.Effective)), maps.Keys(s.Effective))
	slices.Sort(names)
	return names
}

// Unknown returns the unknown bit positions in ascending order.
func (s CapabilitySet) Unknown() []int {
	bits := slices.AppendSeq(make([]int, 0, len(s.UnknownBits)), maps.Keys(s.UnknownBits))
	slices.Sort(bits)
	return bits
}
