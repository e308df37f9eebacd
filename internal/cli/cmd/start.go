package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/matjam/ledsign/internal/cli/cmd/utils"
	"github.com/matjam/ledsign/internal/ipc"
	"github.com/matjam/ledsign/internal/sink"
	daemon "github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the ledsign daemon",
		Long:  `Starts rendering templates and listening on the control socket.`,
		Run: func(cmd *cobra.Command, args []string) {
			if v, err := cmd.Flags().GetBool("background"); err == nil && v {
				startBackground()
				return
			}
			StartManager(nil)
		},
	}
}

func startBackground() {
	ctx := &daemon.Context{
		Env: append(os.Environ(), "BACKGROUND_PROCESS=1"),
	}

	child, err := ctx.Reborn()
	if err != nil {
		log.Fatalf("Unable to fork: %v", err)
	}
	if child != nil {
		log.Infof("ledsign started in background with PID %d", child.Pid)
		return
	}
	defer ctx.Release()

	StartManager(nil)
}

// StartManager runs the daemon in the current process. A nil sink picks
// the configured frame output, falling back to discard.
func StartManager(out sink.FrameSink) {
	log.Infof("StartManager() started in PID: %d", os.Getpid())

	if os.Getenv("BACKGROUND_PROCESS") == "1" {
		setupRotatingLogger()
	}

	if _, err := ipc.SendStatus(); err == nil {
		log.Infof("ledsign is already running, exiting")
		os.Exit(0)
	}

	log.Info("Searching for templates ...")

	templatesDir := utils.CanonicalPath(viper.GetString("templates"))
	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		log.Fatalf("Error reading templates directory: %v", err)
	}

	templatePaths := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			templatePaths = append(templatePaths, filepath.Join(templatesDir, entry.Name()))
		}
	}

	if len(templatePaths) == 0 {
		log.Fatal("No templates found in the specified directory.")
	}

	log.Infof("Found %d templates in %s", len(templatePaths), templatesDir)

	if out == nil {
		out = openConfiguredSink()
	}

	manager := ipc.NewManager(templatePaths, out)

	go func() {
		log.Infof("Starting socket server")
		ipc.Start(manager)
	}()

	manager.Run()

	os.Remove(ipc.SocketPath())
	log.Infof("ledsign exited")
}

func openConfiguredSink() sink.FrameSink {
	path := utils.CanonicalPath(viper.GetString("output"))
	if path == "" {
		log.Warn("No frame output configured, frames will be discarded")
		return sink.Discard{}
	}

	w, err := sink.NewWriter(path)
	if err != nil {
		log.Fatalf("Error opening frame output: %v", err)
	}
	log.Infof("Writing frames to %s", path)
	return w
}

func setupRotatingLogger() {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "ledsign")
	logPath := filepath.Join(logDir, "ledsign.log")

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	log.SetLevel(log.InfoLevel)
}
