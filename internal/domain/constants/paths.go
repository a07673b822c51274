package constants

// Resolver file locations
const (
	DefaultResolvConfPath     = "/etc/resolv.conf"
	DefaultResolvConfTempPath = "/etc/resolv.conf-ncd-temp"

	// ResolvConfGeneratorComment is written as the first line of every generated resolver file
	ResolvConfGeneratorComment = "# generated by badvpn-ncd"

	ResolvConfPermission = 0644

	// ResolvConfBackupPrefix names backups as resolv.conf_20060102_150405.conf
	ResolvConfBackupPrefix  = "resolv.conf"
	DefaultResolvMaxBackups = 5
	BackupDirPermission     = 0755
)

// External administrative tools used by the command backend
const (
	DefaultIPCommand    = "ip"
	DefaultRouteCommand = "route"
)

// Backend types
const (
	BackendNetlink = "netlink"
	BackendCommand = "command"
)

// Interface constraints
const (
	// MaxInterfaceNameLength is IFNAMSIZ minus the terminating NUL
	MaxInterfaceNameLength = 15
	MaxPrefixLength        = 32
)

// Defaults
const (
	DefaultLogLevel = "info"
)
