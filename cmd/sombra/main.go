//  UMBRA ⸻ cmd/main.go <>
// +-----------------------------------------------------------+
//  ,dPPPP´ ,d88b.  8b   d8 888PPb.  ,dbPPPp ,8b.              |
//  Y8b.    d8''8b  88b d88 88   8b  d88ooP' 88'8o             |
//  `Y8b.   88  88  88Y8P88 88PPP8b ,88' P'  88PPY8. |____________________________________________
//  d8PPPP' 'Y88P'  888888' 888888' 88  do   8b   ´Y' .go <--| CLI entrypoint and command routing +

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"sombra/internal/config"
	"sombra/internal/daemon"
	"sombra/internal/label"
	"sombra/internal/prompt"
	"sombra/internal/shell"
	"sombra/internal/util"
)

func main() {
	util.Wiper()

	printHeader()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "daemon":
		handleDaemonCommand(os.Args[2:])
	case "help":
		util.Wiper()
		printUsage()
	case "version":
		printVersion()
	default:
		// anything else is the path of an image to label
		handleLabelCommand(command)
	}
}

func handleLabelCommand(path string) {
	util.Wiper()

	if _, err := os.Stat(path); err != nil {
		fmt.Println(util.ErrorSymbol() + " " + util.LBL.Render("File not found: "+path))
		os.Exit(2)
	}

	// pre-fill the prompt from the label template when one exists
	prefill, err := config.RenderLabel("", path)
	if err != nil {
		prefill = config.FallbackLabel(path)
	}

	text, ok, err := prompt.AskLabel(prefill)
	if err != nil {
		fmt.Println(util.LBL.Render("[X] Prompt failed: " + err.Error()))
		os.Exit(3)
	}
	if !ok {
		fmt.Println(util.InfoSymbol() + " " + util.NTC.Render("Cancelled, nothing written"))
		os.Exit(0)
	}

	mode, ok, err := prompt.AskMode()
	if err != nil {
		fmt.Println(util.LBL.Render("[X] Prompt failed: " + err.Error()))
		os.Exit(3)
	}
	if !ok {
		fmt.Println(util.InfoSymbol() + " " + util.NTC.Render("Cancelled, nothing written"))
		os.Exit(0)
	}

	options := label.DefaultOptions()
	options.Mode = mode

	fmt.Println(util.NTC.Render("[~] Processing: " + path))

	var result *label.Result
	out, err := util.SpinWhile("[~] Applying label", func() (string, error) {
		r, err := label.LabelFile(path, text, options)
		if err != nil {
			return "", err
		}
		result = r
		return label.FormatResult(r), nil
	})

	if err != nil {
		fmt.Println(util.LBL.Render("[X] Labeling failed: " + err.Error()))
		os.Exit(exitCodeFor(err))
	}

	if err := shell.Refresh(result.OutputPath); err != nil {
		fmt.Println(util.WarningSymbol() + " " + util.ACC.Render("Could not refresh file browser: "+err.Error()))
	}

	fmt.Println(util.SuccessSymbol() + " " + util.NTC.Render("Labeling completed successfully"))
	fmt.Println(out)
}

// maps a pipeline failure onto the process exit code
func exitCodeFor(err error) int {
	if label.KindOf(err) == label.KindPathMissing {
		return 2
	}
	return 3
}

func handleDaemonCommand(args []string) {
	util.Wiper()

	if len(args) < 1 {
		fmt.Println(util.LBL.Render("[X] Daemon mode requires a subcommand"))
		fmt.Println(util.SUB.Render("Usage: sombra daemon [on|off|status]"))
		os.Exit(1)
	}

	subcommand := args[0]

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Println(util.LBL.Render("[X] Cannot determine home directory"))
		os.Exit(1)
	}

	pidFile := filepath.Join(homeDir, ".sombra", "daemon.pid")

	switch subcommand {
	case "on", "start":
		if isDaemonRunning(pidFile) {
			fmt.Println(util.NTC.Render("[!] Daemon is already running"))
			os.Exit(0)
		}

		fmt.Println(util.NTC.Render("[~] Starting daemon..."))

		if _, err := config.SetupConfigDir(); err != nil {
			fmt.Println(util.LBL.Render("[!] Could not create config directory"))
		}

		d, err := daemon.NewDaemon("")
		if err != nil {
			fmt.Println(util.LBL.Render("[X] Failed to create daemon: " + err.Error()))
			os.Exit(1)
		}

		if err := d.Start(); err != nil {
			fmt.Println(util.LBL.Render("[X] Failed to start daemon: " + err.Error()))
			os.Exit(1)
		}

		pid := os.Getpid()
		if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
			fmt.Println(util.LBL.Render("[!] Could not create daemon directory"))
		}

		pidBytes := make([]byte, 0, 16) // pre-allocate reasonable capacity for pid
		pidBytes = fmt.Appendf(pidBytes, "%d", pid)
		if err := os.WriteFile(pidFile, pidBytes, 0644); err != nil {
			fmt.Println(util.LBL.Render("[!] Could not write PID file"))
		}

		fmt.Println(util.NTC.Render("[✓] Daemon started successfully"))

		// park until interrupted, then retire cleanly
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		fmt.Println(util.NTC.Render("[~] Stopping daemon..."))

		if d.IsRunning() {
			status := d.Status()
			fmt.Println(util.NTC.Render(fmt.Sprintf("[i] Processed %d files, %d errors", status.ProcessedFiles, status.ErrorCount)))
		}

		if err := d.Stop(); err != nil {
			fmt.Println(util.LBL.Render("[X] Error stopping daemon: " + err.Error()))
		}

		if err := os.Remove(pidFile); err != nil {
			fmt.Println(util.LBL.Render("[!] Could not remove PID file"))
		}

		fmt.Println(util.NTC.Render("[✓] Daemon stopped"))

	case "off", "stop":
		if !isDaemonRunning(pidFile) {
			fmt.Println(util.NTC.Render("[!] Daemon is not running"))
			os.Exit(0)
		}

		pidBytes, err := os.ReadFile(pidFile)
		if err != nil {
			fmt.Println(util.LBL.Render("[X] Could not read daemon PID"))
			os.Exit(1)
		}

		pidStr := strings.TrimSpace(string(pidBytes))
		fmt.Println(util.NTC.Render("[~] Stopping daemon (PID " + pidStr + ")..."))

		// no IPC channel to the running process, retiring the
		// PID file marks the daemon stopped
		if err := os.Remove(pidFile); err != nil {
			fmt.Println(util.LBL.Render("[X] Could not remove PID file"))
			os.Exit(1)
		}

		fmt.Println(util.NTC.Render("[✓] Daemon stopped"))

	case "status":
		if isDaemonRunning(pidFile) {
			pidBytes, _ := os.ReadFile(pidFile)
			pidStr := strings.TrimSpace(string(pidBytes))
			fmt.Println(util.NTC.Render("[...] Daemon is running (PID " + pidStr + ")"))
		} else {
			fmt.Println(util.NTC.Render("[...] Daemon is not running"))
		}

	default:
		fmt.Println(util.LBL.Render("[X] Unknown daemon command: " + subcommand))
		fmt.Println(util.SUB.Render("Usage: sombra daemon [on|off|status]"))
		os.Exit(1)
	}
}

func isDaemonRunning(pidFile string) bool {
	_, err := os.Stat(pidFile)
	return err == nil
}

func printHeader() {
	const art = `
	,dPPPP´ ,d88b.  8b   d8 888PPb.  ,dbPPPp ,8b.
	Y8b.    d8''8b  88b d88 88   8b  d88ooP' 88'8o
	´Y8b.   88  88  88Y8P88 88PPP8b ,88' P'  88PPY8.
	d8PPPP' 'Y88P'  888888' 888888' 88  do   8b   ´Y'
`

	fmt.Printf("\n%s\n", util.LBL.Render(art))
	fmt.Printf("%s %s\n\n",
		util.NTC.Render("	→"),
		util.NTU.Render("Image Labeling Utility"))
}

func printUsage() {
	fmt.Println(util.LBL.Render("USAGE"))
	fmt.Println("  sombra <image path> | <command>")
	fmt.Println("")
	fmt.Println(util.LBL.Render("COMMANDS"))
	fmt.Println("  <image path>            label a single image interactively")
	fmt.Println("  daemon <on|off|status>  manage background labeling service")
	fmt.Println("  help                    show this help information")
	fmt.Println("  version                 show version information")
	fmt.Println(util.Divider)
	fmt.Println(util.LBL.Render("EXIT CODES"))
	fmt.Println("  0  success, or cancelled at a prompt")
	fmt.Println("  1  missing or invalid argument")
	fmt.Println("  2  input path does not exist")
	fmt.Println("  3  compositing or persistence failed")
}

func printVersion() {
	util.Wiper()

	fmt.Println(util.LBL.Render("SOMBRA v1.0.0"))
	fmt.Println(util.Ornament + " " + util.NTU.Render("A bottom-band image labeling utility for Linux"))
	fmt.Println("")
	fmt.Println(util.NTC.Render("Copyright (c) 2026"))
}
