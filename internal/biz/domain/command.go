package domain

// Command identifies a registered bot command
type Command string

const (
	CommandStart        Command = "start"
	CommandStatus       Command = "status"
	CommandConfig       Command = "config"
	CommandInfo         Command = "info"
	CommandRecentOTPs   Command = "recent_otps"
	CommandLastOTP      Command = "last_otp"
	CommandNewOTP       Command = "new_otp"
	CommandRestart      Command = "restart"
	CommandStop         Command = "stop"
	CommandStartMonitor Command = "start_monitor"
	CommandLogs         Command = "logs"
)

// Commands is the closed list of registered commands
var Commands = []Command{
	CommandStart,
	CommandStatus,
	CommandConfig,
	CommandInfo,
	CommandRecentOTPs,
	CommandLastOTP,
	CommandNewOTP,
	CommandRestart,
	CommandStop,
	CommandStartMonitor,
	CommandLogs,
}

// ParseCommand resolves a command name (without the leading slash).
// Unknown names return false.
func ParseCommand(name string) (Command, bool) {
	for _, c := range Commands {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}
