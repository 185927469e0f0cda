package proto

// ReadyBanner is printed once when the controller loop starts, so a host
// opening the stream knows the device is accepting commands.
const ReadyBanner = "READY"

// OK formats a success reply line.
func OK(msg string) string { return "OK " + msg }

// Err formats a failure reply line.
func Err(msg string) string { return "ERR " + msg }
