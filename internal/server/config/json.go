package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akimovdo/accountd/internal/flagx"
	"github.com/akimovdo/accountd/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for the TTL so both "30m"-style strings and
// integer nanoseconds parse. After unmarshalling, its fields are copied into
// the runtime Config.
type JsonConfig struct {
	EndpointAddr string         `json:"endpoint_addr"`
	DatabaseDSN  string         `json:"database_dsn"`
	SessionTTL   timex.Duration `json:"session_ttl"`
	SMTPHost     string         `json:"smtp_host"`
	SMTPPort     string         `json:"smtp_port"`
	SMTPFrom     string         `json:"smtp_from"`
	SMTPPassword string         `json:"smtp_password"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags into the provided Config. When neither
// flag is set, nothing is loaded. An unreadable or invalid file panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionTTL = time.Duration(c.SessionTTL.Duration)
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPFrom = c.SMTPFrom
	config.SMTPPassword = c.SMTPPassword
}
