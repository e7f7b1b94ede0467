// Copyright (c) 2026 The relaybot authors
// released under the MIT license

package irc

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"gopkg.in/yaml.v2"

	"github.com/relaybot/relaybot/irc/logger"
)

// here's how this works: exported (capitalized) members of the config structs
// are defined in the YAML file and deserialized directly from there. They may
// be postprocessed and overwritten by LoadConfig. Unexported (lowercase) members
// are derived from the exported members in LoadConfig.

// RelayConfig controls the local intake that external producers use to
// inject lines into channels.
type RelayConfig struct {
	Enabled        bool
	Listen         string
	MaxSendQString string `yaml:"max-sendq"`
	MaxSendQBytes  int    `yaml:"-"`
	QueueLength    int    `yaml:"queue-length"`
}

// DisplayConfig controls the terminal display of incoming traffic.
type DisplayConfig struct {
	Enabled *bool
	Color   string
}

// Config is the bot configuration. JSON config files are accepted too,
// since JSON is valid YAML.
type Config struct {
	Nickname string
	Username string
	Realname string
	Password string
	Server   string
	Port     int
	Channels []string

	// if set, connect to this ws:// URL instead of Server:Port
	ServerWebsocket string `yaml:"server-websocket"`

	ReconnectDelay time.Duration `yaml:"reconnect-delay"`
	KeepAlive      time.Duration `yaml:"keepalive"`

	Relay    RelayConfig
	Display  DisplayConfig
	LockFile string `yaml:"lock-file"`
	Logging  []logger.LoggingConfig

	Filename string `yaml:"-"`

	keepAlive      time.Duration
	displayEnabled bool
}

// LoadConfig loads the given YAML configuration file.
func LoadConfig(filename string) (config *Config, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	config, err = ParseConfig(data)
	if err != nil {
		return nil, err
	}
	config.Filename = filename
	return config, nil
}

// ParseConfig parses and validates configuration data.
func ParseConfig(data []byte) (config *Config, err error) {
	config = new(Config)
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if err = config.process(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) process() (err error) {
	if config.Nickname == "" {
		return ErrNicknameMissing
	}
	if strings.ContainsAny(config.Nickname, " ,*?!@") || strings.HasPrefix(config.Nickname, ":") {
		return ErrNicknameInvalid
	}
	if config.Username == "" {
		config.Username = config.Nickname
	}
	if config.Realname == "" {
		config.Realname = config.Nickname
	}

	if config.ServerWebsocket != "" {
		u, err := url.Parse(config.ServerWebsocket)
		if err != nil || u.Scheme != "ws" || u.Host == "" {
			return ErrWebsocketURLInvalid
		}
	} else {
		if config.Server == "" {
			return ErrServerMissing
		}
		if config.Port == 0 {
			config.Port = 6667
		}
		if config.Port < 1 || config.Port > 65535 {
			return ErrPortInvalid
		}
	}

	for _, channel := range config.Channels {
		if channel == "" || strings.ContainsAny(channel, " ,\x07") {
			return fmt.Errorf("%w: %q", ErrChannelInvalid, channel)
		}
	}

	if config.ReconnectDelay <= 0 {
		config.ReconnectDelay = defaultReconnectDelay
	}
	config.keepAlive = config.KeepAlive
	if config.keepAlive == 0 {
		config.keepAlive = defaultKeepAlive
	}

	if config.Relay.Enabled && config.Relay.Listen == "" {
		return ErrRelayListenMissing
	}
	if config.Relay.MaxSendQString == "" {
		config.Relay.MaxSendQString = "16k"
	}
	maxSendQBytes, err := bytefmt.ToBytes(config.Relay.MaxSendQString)
	if err != nil {
		return fmt.Errorf("Could not parse relay max-sendq (make sure it only contains whole numbers): %s", err.Error())
	}
	config.Relay.MaxSendQBytes = int(maxSendQBytes)
	if config.Relay.QueueLength <= 0 {
		config.Relay.QueueLength = 64
	}

	config.displayEnabled = config.Display.Enabled == nil || *config.Display.Enabled
	switch config.Display.Color {
	case "":
		config.Display.Color = "auto"
	case "auto", "always", "never":
	default:
		return ErrDisplayColorInvalid
	}

	if len(config.Logging) == 0 {
		config.Logging = []logger.LoggingConfig{{
			Method:      "stderr",
			LevelString: "info",
			TypeString:  "* -userinput -useroutput",
		}}
	}
	for i := range config.Logging {
		if err := config.Logging[i].Process(); err != nil {
			return fmt.Errorf("Could not process logging config: %w", err)
		}
	}

	return nil
}

// DispatchConfig returns the settings the dispatcher uses.
func (config *Config) DispatchConfig() DispatchConfig {
	return DispatchConfig{
		Nickname: config.Nickname,
		Username: config.Username,
		Realname: config.Realname,
		Password: config.Password,
		Channels: append([]string(nil), config.Channels...),
	}
}

// DisplayEnabled reports whether incoming traffic should be shown on stdout.
func (config *Config) DisplayEnabled() bool {
	return config.displayEnabled
}

// Address returns a human-readable address of the configured server.
func (config *Config) Address() string {
	if config.ServerWebsocket != "" {
		return config.ServerWebsocket
	}
	return fmt.Sprintf("%s:%d", config.Server, config.Port)
}
