package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dsemenov/authkeeper/internal/flagx"
	"github.com/dsemenov/authkeeper/internal/timex"
)

// JsonConfig is the DTO for reading client configuration from a JSON file.
// The timeout accepts both duration strings ("10s") and integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags. When neither flag is set, nothing is loaded. Unreadable
// files or invalid JSON cause a panic.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

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

	config.ServerBaseURL = c.ServerBaseURL
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
