// UMBRA ⸻ internal/config/template.go
// label template scripting

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// runs the label template for an image; the script sees the image path and
// its naming pieces as globals and must return the label string
func RenderLabel(scriptPath, imagePath string) (string, error) {
	if scriptPath == "" {
		// search common locations
		paths := []string{
			"config/label.lua",
			"./label.lua",
			filepath.Join(os.Getenv("HOME"), ".sombra/config/label.lua"),
		}

		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				scriptPath = p
				break
			}
		}
	}

	if scriptPath == "" {
		return "", fmt.Errorf("label.lua not found in search paths")
	}

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	base := filepath.Base(imagePath)
	ext := filepath.Ext(base)

	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("path", lua.LString(imagePath))
	L.SetGlobal("name", lua.LString(base))
	L.SetGlobal("stem", lua.LString(strings.TrimSuffix(base, ext)))
	L.SetGlobal("ext", lua.LString(strings.TrimPrefix(ext, ".")))
	L.SetGlobal("date", lua.LString(time.Now().Format("2006-01-02")))

	if err := L.DoString(string(data)); err != nil {
		return "", fmt.Errorf("failed to execute template Lua: %w", err)
	}

	result := L.Get(-1)
	if result.Type() != lua.LTString {
		return "", fmt.Errorf("label template must return a string")
	}

	labelText := strings.TrimSpace(result.String())
	if labelText == "" {
		return "", fmt.Errorf("label template returned an empty string")
	}

	return labelText, nil
}

// fallback label when no template is available
func FallbackLabel(imagePath string) string {
	base := filepath.Base(imagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}
