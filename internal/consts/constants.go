package consts

// Bundled asset paths, relative to the asset bundle root.
const (
	AssetRCLocal  = "guest/lib/smartdc/joyent_rc.local"
	AssetShutdown = "guest/sbin/shutdown"
	AssetUnit     = "etc/systemd/system/joyent.service"
	AssetManpath  = "guest/etc/profile.d/native_manpath.sh"
	AssetSmartDC  = "guest/lib/smartdc"
)

// Guest paths, relative to the guest root.
const (
	GuestRCLocal   = "etc/rc.local"
	GuestShutdown  = "sbin/shutdown"
	GuestUnitDir   = "etc/systemd/system"
	GuestUnit      = "etc/systemd/system/joyent.service"
	GuestUnitWants = "etc/systemd/system/multi-user.target.wants/joyent.service"
	GuestManpath   = "etc/profile.d/native_manpath.sh"
	GuestSmartDC   = "lib/smartdc"
	GuestSbin      = "usr/sbin"
)

// UnitWantsTarget is relative so the link resolves both inside the guest and
// from the host through the guest root.
const UnitWantsTarget = "../joyent.service"

// MdataCommands are linked from the native overlay into the guest.
var MdataCommands = []string{
	"mdata-get",
	"mdata-put",
	"mdata-delete",
	"mdata-list",
}

const (
	DefaultConfigFile = "zguest.yaml"
	DefaultAssetsDir  = "/usr/lib/zguest"
	EnvFileName       = ".env"
)
