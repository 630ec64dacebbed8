package constants

import (
	"os"
	"path/filepath"
)

const DefaultHomeEnv string = "SOLBANK_HOME"
const ConfigEnv string = "SOLBANK_CONFIG"

// Prefix of environment overrides, e.g. SOLBANK_NETWORK
const EnvPrefix string = "SOLBANK"

const ConfigName string = "client_config"

var DefaultHome string

func init() {
	if home := os.Getenv(DefaultHomeEnv); home != "" {
		DefaultHome = home
		return
	} else {
		// ~/.solbank default
		userHomeDir, err := os.UserHomeDir()
		if err != nil {
			DefaultHome = "/data"
		} else {
			DefaultHome = filepath.Join(userHomeDir, ".solbank")
		}
	}
}
