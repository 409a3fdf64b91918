package system

// InitSystem names the boot mechanism the installed hook plugs into.
type InitSystem string

const (
	InitOpenRC  InitSystem = "openrc"
	InitSystemd InitSystem = "systemd"
	InitSysV    InitSystem = "sysvinit"
	InitRunit   InitSystem = "runit"
	InitUnknown InitSystem = "unknown"
)

// initSystems is a fixed lookup; nothing is probed inside the guest.
var initSystems = map[Distribution]InitSystem{
	Alpine: InitOpenRC,
	Arch:   InitSystemd,
	Debian: InitSysV,
	Redhat: InitSysV,
	Void:   InitRunit,
}

// InitSystem returns the init system the distribution's hook targets.
func (d Distribution) InitSystem() InitSystem {
	if s, ok := initSystems[d]; ok {
		return s
	}
	return InitUnknown
}
