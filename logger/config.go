package logger

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Level is the minimum level written, e.g., "debug" or "warn".
	Level string `default:"info"`
	// Pretty switches the console output to the human readable writer.
	Pretty bool

	// FileLogging makes the framework log to a rolling file
	// the fields below can be skipped if this value is false!
	FileLogging bool `split_words:"true"`
	// Directory to log to to when file logging is enabled
	Directory string `split_words:"true" default:"/var/log"`
	// Filename is the name of the logfile which will be placed inside the directory
	Filename string `split_words:"true" default:"blobstore.log"`
	// MaxSize the max size in MB of the logfile before it's rolled
	MaxSize int `split_words:"true" default:"500"`
	// MaxBackups the max number of rolled files to keep
	MaxBackups int `split_words:"true" default:"3"`
	// MaxAge the max age in days to keep a logfile
	MaxAge int `split_words:"true" default:"30"`
}

// ConfigFromEnv loads the logging configuration using the LOG_ prefix,
// e.g., LOG_LEVEL, LOG_FILE_LOGGING.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefixDefault, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
