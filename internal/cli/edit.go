package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/NikitaCOEUR/skycast/internal/config"
)

// Edit opens the config file in the user's editor, creating a sample first
// when it does not exist
func Edit(configPath string) error {
	if configPath == "" {
		path, err := config.GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		configPath = path
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.WriteSample(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Printf("Created new config: %s\n", configPath)
	} else {
		fmt.Printf("Opening config: %s\n", configPath)
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// findEditor returns $EDITOR, $VISUAL or the first common editor on PATH
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := os.Getenv(env); editor != "" {
			return editor, nil
		}
	}
	for _, e := range []string{"nano", "vim", "vi"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no editor found. Set $EDITOR or $VISUAL environment variable")
}
