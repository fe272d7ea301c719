package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	FlowPath string // .hcl file or directory of flow declarations

	LogFormat   string
	LogLevel    string
	MetricsPort int

	// Ops is the ordered operation script to run against the instance.
	Ops []Operation
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.FlowPath == "" {
		return nil, errors.New("FlowPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
