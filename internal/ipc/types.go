package ipc

import "os"

type CommandType string

const (
	CommandStop   CommandType = "stop"
	CommandNext   CommandType = "next"
	CommandLoad   CommandType = "load"
	CommandStatus CommandType = "status"
)

type Command struct {
	Type CommandType `json:"type"`
	Args []string    `json:"args"`
}

// ManagerInterface is what the socket server needs from the render-loop
// manager.
type ManagerInterface interface {
	CurrentTemplate() string
	EnqueueCommand(Command)
	PreviewPNG() ([]byte, error)
	SetDataValues(values map[string]any)
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type StatusResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	Version         string `json:"version"`
	PID             int    `json:"pid"`
	Socket          string `json:"socket"`
	Config          string `json:"config"`
	CurrentTemplate string `json:"currentTemplate"`
}

// SocketPath returns the control socket location, preferring the user
// runtime directory.
func SocketPath() string {
	sockDir := os.Getenv("XDG_RUNTIME_DIR")
	if sockDir == "" {
		sockDir = os.TempDir()
	}
	return sockDir + "/ledsign.sock"
}
