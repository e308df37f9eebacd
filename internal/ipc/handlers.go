package ipc

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/matjam/ledsign"
	"github.com/spf13/viper"
)

// GET /status
func statusHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, StatusResponse{
			Status:          "ok",
			Message:         "ledsign is running",
			Version:         strings.Trim(ledsign.Version, "\n\r "),
			PID:             os.Getpid(),
			Socket:          SocketPath(),
			Config:          viper.ConfigFileUsed(),
			CurrentTemplate: m.CurrentTemplate(),
		}, "  ")
	}
}

// GET /preview.png
func previewHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := m.PreviewPNG()
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		}
		return c.Blob(http.StatusOK, "image/png", data)
	}
}

// POST /stop
func stopHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.EnqueueCommand(Command{Type: CommandStop})
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// POST /next
func nextHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.EnqueueCommand(Command{Type: CommandNext})
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// POST /load
func loadHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var templates []string
		if err := c.Bind(&templates); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON array of template paths"})
		}

		m.EnqueueCommand(Command{
			Type: CommandLoad,
			Args: templates,
		})

		return c.JSON(http.StatusOK, map[string]any{
			"status": "ok",
			"loaded": len(templates),
		})
	}
}

// POST /data. The data-integration side pushes the dataValues snapshot
// that data elements resolve against.
func dataHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var values map[string]any
		if err := c.Bind(&values); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON object of data values"})
		}
		m.SetDataValues(values)
		return c.JSON(http.StatusOK, map[string]any{
			"status": "ok",
			"keys":   len(values),
		})
	}
}
