// Package consts contains constants for the video domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
}

// Bot commands
var (
	CommandStart  = Command{Name: "start", Description: "Bắt đầu sử dụng bot"}
	CommandHelp   = Command{Name: "help", Description: "Xem hướng dẫn sử dụng"}
	CommandStatus = Command{Name: "status", Description: "Kiểm tra trạng thái bot"}
)

// AllCommands contains all available bot commands for menu registration
var AllCommands = []Command{
	CommandStart,
	CommandHelp,
	CommandStatus,
}
