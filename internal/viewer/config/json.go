package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vkarpenko/valentine/internal/flagx"
	"github.com/vkarpenko/valentine/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration so intervals parse both from strings ("5s") and
// integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	DatabaseDSN    string         `json:"database_dsn"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags; when
// neither is set, no JSON file is loaded.
func parseJson(config *Config) {

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

	config.ServerBaseURL = c.ServerBaseURL
	config.DatabaseDSN = c.DatabaseDSN
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
