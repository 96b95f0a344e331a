package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/skycast/internal/config"
	"github.com/NikitaCOEUR/skycast/internal/serrors"
)

// Init writes a sample config file, to configPath or the XDG default
func Init(configPath string) error {
	if configPath == "" {
		path, err := config.GetDefaultConfigPath()
		if err != nil {
			return serrors.NewConfigurationError("", "failed to get config path", err)
		}
		configPath = path
	}

	if err := config.WriteSample(configPath); err != nil {
		return serrors.NewConfigurationError(configPath, "failed to create config file", err)
	}

	fmt.Printf("Created sample config: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set api.key (or export SKYCAST_API_KEY)")
	fmt.Println("  2. Run 'skycast validate' to check the file")
	fmt.Println("  3. Run 'skycast' to start looking up the weather")
	return nil
}
