package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cordialsys/solbank/config/constants"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var noSuchFile = "no such file"
var notFoundIn = "not found in"

const DefaultProgramID = "72p9csHh7VeF2yCgsYjcwNzujaQpPvLKJZ9c5v6nz9CV"
const DefaultNetwork = "localnet"
const DefaultCommitment = "confirmed"
const DefaultConfirmTimeout = "60s"

// DefaultKeypairPath is where solana-keygen writes the default keypair
const DefaultKeypairPath = "~/.config/solana/id.json"

// ClientConfig is the solbank client configuration, as stored in client_config.yaml
type ClientConfig struct {
	// Keypair reference: a secret reference (env:, file:, raw:, vault:, gsm:), a
	// path to a keypair file, or the 64-byte keypair array itself.
	Keypair        Secret `yaml:"keypair,omitempty" toml:"keypair,omitempty" json:"keypair,omitempty" mapstructure:"keypair"`
	ProgramID      string `yaml:"program_id,omitempty" toml:"program_id,omitempty" json:"program_id,omitempty" mapstructure:"program_id"`
	Network        string `yaml:"network,omitempty" toml:"network,omitempty" json:"network,omitempty" mapstructure:"network"`
	Rpc            string `yaml:"rpc,omitempty" toml:"rpc,omitempty" json:"rpc,omitempty" mapstructure:"rpc"`
	Commitment     string `yaml:"commitment,omitempty" toml:"commitment,omitempty" json:"commitment,omitempty" mapstructure:"commitment"`
	PriorityFee    uint64 `yaml:"priority_fee,omitempty" toml:"priority_fee,omitempty" json:"priority_fee,omitempty" mapstructure:"priority_fee"`
	ConfirmTimeout string `yaml:"confirm_timeout,omitempty" toml:"confirm_timeout,omitempty" json:"confirm_timeout,omitempty" mapstructure:"confirm_timeout"`
	JournalDir     string `yaml:"journal_dir,omitempty" toml:"journal_dir,omitempty" json:"journal_dir,omitempty" mapstructure:"journal_dir"`
}

func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		ProgramID:      DefaultProgramID,
		Network:        DefaultNetwork,
		Commitment:     DefaultCommitment,
		ConfirmTimeout: DefaultConfirmTimeout,
	}
}

func (cfg *ClientConfig) ConfirmTimeoutDuration() (time.Duration, error) {
	if cfg.ConfirmTimeout == "" {
		return time.ParseDuration(DefaultConfirmTimeout)
	}
	timeout, err := time.ParseDuration(cfg.ConfirmTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid confirm_timeout %q: %v", cfg.ConfirmTimeout, err)
	}
	return timeout, nil
}

func getViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType("yaml")

	defaults := DefaultConfig()
	v.SetDefault("keypair", "")
	v.SetDefault("program_id", defaults.ProgramID)
	v.SetDefault("network", defaults.Network)
	v.SetDefault("rpc", "")
	v.SetDefault("commitment", defaults.Commitment)
	v.SetDefault("priority_fee", 0)
	v.SetDefault("confirm_timeout", defaults.ConfirmTimeout)
	v.SetDefault("journal_dir", "")

	// SOLBANK_NETWORK, SOLBANK_PROGRAM_ID, ...
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(constants.ConfigEnv)
	}
	if path != "" {
		v.SetConfigFile(expandHome(path))
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
	}

	// otherwise, prioritize current path or parent
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	// Lastly, check home dir
	v.AddConfigPath(constants.DefaultHome)
	return v
}

// Load reads the client configuration.
// 1. The file is path, or $SOLBANK_CONFIG, or client_config.yaml in the current path, its parent or $SOLBANK_HOME.
// 2. SOLBANK_* environment variables override file values.
// 3. If no file is found, the defaults (plus environment) are used.
func Load(path string) (*ClientConfig, error) {
	v := getViper(path)
	err := v.ReadInConfig()
	if err != nil {
		msg := strings.ToLower(err.Error())
		_, notFound := err.(viper.ConfigFileNotFoundError)
		explicit := path != "" || os.Getenv(constants.ConfigEnv) != ""
		if explicit || !(notFound || strings.Contains(msg, noSuchFile) || strings.Contains(msg, notFoundIn)) {
			return nil, fmt.Errorf("fatal error reading config file: %w", err)
		}
	}
	// the keypair may be written as the keypair byte array itself
	if raw, ok := v.Get("keypair").([]interface{}); ok {
		bz, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		v.Set("keypair", string(bz))
	}

	cfg := &ClientConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.ConfirmTimeoutDuration(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write saves the configuration, as TOML when path ends in .toml and YAML otherwise.
func (cfg *ClientConfig) Write(path string) error {
	var bz []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		bz, err = toml.Marshal(cfg)
	case ".json":
		bz, err = json.MarshalIndent(cfg, "", "  ")
	default:
		bz, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	path = expandHome(path)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	return os.WriteFile(path, bz, 0600)
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' {
		return strings.Replace(path, "~", os.Getenv("HOME"), 1)
	}
	return path
}
