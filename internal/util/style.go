// UMBRA ⸻ internal/util/style.go
// defines CLI visual style, color roles, ornaments, and motion

package util

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

type PaletteConfig struct {
	Colors struct {
		PALE string
		EMBR string
		ROSE string
		SLTE string
		NOIR string
		MIST string
	}
}

// ╭─ COLOR ROLES ───────────────────────────────╮
var (
	PALE lipgloss.Color
	EMBR lipgloss.Color
	ROSE lipgloss.Color
	SLTE lipgloss.Color
	NOIR lipgloss.Color
	MIST lipgloss.Color
)

// ╭─ STYLE DEFINITIONS ─────────────────────────╮
var (
	HDR lipgloss.Style
	HDU lipgloss.Style
	LBL lipgloss.Style
	SUB lipgloss.Style
	NTC lipgloss.Style
	NTU lipgloss.Style
	ACC lipgloss.Style
	DIM lipgloss.Style
	ORN lipgloss.Style
)

// ╭─ ORNAMENT ──────────────────────────────────╮
var (
	Ornament string
	Divider  string
)

func init() {
	// load from TOML
	palette := loadPalette()

	PALE = lipgloss.Color(palette.Colors.PALE)
	EMBR = lipgloss.Color(palette.Colors.EMBR)
	ROSE = lipgloss.Color(palette.Colors.ROSE)
	SLTE = lipgloss.Color(palette.Colors.SLTE)
	NOIR = lipgloss.Color(palette.Colors.NOIR)
	MIST = lipgloss.Color(palette.Colors.MIST)

	HDR = lipgloss.NewStyle().Foreground(ROSE).Bold(true)
	HDU = lipgloss.NewStyle().Foreground(ROSE).Bold(true).Underline(true)
	LBL = lipgloss.NewStyle().Foreground(EMBR).Bold(true)
	SUB = lipgloss.NewStyle().Foreground(SLTE)
	NTC = lipgloss.NewStyle().Foreground(PALE).Bold(true)
	NTU = lipgloss.NewStyle().Foreground(PALE).Bold(true).Underline(true)
	ACC = lipgloss.NewStyle().Foreground(MIST).Bold(true)
	DIM = lipgloss.NewStyle().Foreground(NOIR).Faint(true)
	ORN = lipgloss.NewStyle().Foreground(SLTE).Bold(true)

	Ornament = ORN.Render("›")
	Divider = SUB.Render(strings.Repeat("─", 48))
}

func loadPalette() PaletteConfig {
	var palette PaletteConfig

	paths := []string{
		"tinta.toml",
		"data/tinta.toml",
		filepath.Join(os.Getenv("HOME"), ".sombra/config/tinta.toml"),
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, &palette); err == nil {
			return palette
		}
	}

	// no tinta.toml found anywhere, fall back to built-in defaults
	palette.Colors.PALE = "#CFCFCF"
	palette.Colors.EMBR = "#FF7A1A"
	palette.Colors.ROSE = "#E84C8A"
	palette.Colors.SLTE = "#4A4A4A"
	palette.Colors.NOIR = "#101010"
	palette.Colors.MIST = "#9FB8C8"

	return palette
}

// ╭─ SPINNER ───────────────────────────────────╮
func SpinWhile(label string, fn func() (string, error)) (string, error) {
	s := spinner.New(spinner.WithSpinner(spinner.Meter))
	ticker := time.NewTicker(s.Spinner.FPS)
	defer ticker.Stop()

	done := make(chan struct{})
	result := make(chan struct {
		out string
		err error
	})

	go func() {
		frame := 0
		frames := s.Spinner.Frames
		for {
			select {
			case <-ticker.C:
				fmt.Printf("\r%s %s", ORN.Render(frames[frame]), LBL.Render(label))
				frame = (frame + 1) % len(frames)
			case <-done:
				return
			}
		}
	}()

	go func() {
		out, err := fn()
		result <- struct {
			out string
			err error
		}{out, err}
	}()

	res := <-result
	close(done)
	Wiper()
	return res.out, res.err
}

func SuccessSymbol() string {
	return LBL.Render("[✓]")
}

func WarningSymbol() string {
	return ACC.Render("[!]")
}

func InfoSymbol() string {
	return NTC.Render("[i]")
}

func ErrorSymbol() string {
	return HDR.Render("[X]")
}

// ╭─ CLEAR ─────────────────────────────────────╮
func Wiper() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}
