package escrowd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/nftescrow/errors"
	"github.com/tendermint/tendermint/libs/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// ConfigFile returns the location of the node configuration inside of the
// home directory.
func ConfigFile(home string) string {
	return filepath.Join(home, "config", "escrowd.toml")
}

// Config is the node configuration. It does not affect consensus.
type Config struct {
	Bind             string `toml:"Bind"`
	DBName           string `toml:"DBName"`
	Debug            bool   `toml:"Debug"`
	LogLevel         string `toml:"LogLevel"`
	LogFile          string `toml:"LogFile"`
	LogMaxSizeMB     int    `toml:"LogMaxSizeMB"`
	LogMaxBackups    int    `toml:"LogMaxBackups"`
	LogMaxAgeDays    int    `toml:"LogMaxAgeDays"`
	MetricsAddress   string `toml:"MetricsAddress"`
	MetricsNamespace string `toml:"MetricsNamespace"`
}

// DefaultConfig returns the configuration used for all values missing from
// the configuration file.
func DefaultConfig() Config {
	return Config{
		Bind:             "tcp://localhost:26658",
		DBName:           "escrow.db",
		LogLevel:         "info",
		LogMaxSizeMB:     100,
		LogMaxBackups:    3,
		LogMaxAgeDays:    30,
		MetricsAddress:   "localhost:26660",
		MetricsNamespace: "escrowd",
	}
}

// LoadConfig reads the configuration from given path. A default
// configuration file is written if none exists.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(path, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot decode %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown configuration key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return &cfg, nil
}

// SaveConfig writes the configuration in TOML format.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Validate returns an error if the configuration cannot be used to start
// a node.
func (c *Config) Validate() error {
	var errs error
	if c.Bind == "" {
		errs = errors.AppendField(errs, "Bind", errors.ErrEmpty)
	}
	if c.DBName == "" {
		errs = errors.AppendField(errs, "DBName", errors.ErrEmpty)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		errs = errors.AppendField(errs, "LogLevel", errors.Wrap(errors.ErrInvalidInput, err.Error()))
	}
	if c.LogMaxSizeMB < 0 || c.LogMaxBackups < 0 || c.LogMaxAgeDays < 0 {
		errs = errors.AppendField(errs, "LogFile", errors.Wrap(errors.ErrInvalidInput, "negative rotation limit"))
	}
	return errs
}

// NewLogger returns a logger writing to out and, if a log file is
// configured, to a size rotated file inside of the home directory. The
// returned closer releases the log file.
func NewLogger(c *Config, home string, out io.Writer) (log.Logger, io.Closer, error) {
	level, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	var closer io.Closer = nopCloser{}
	if c.LogFile != "" {
		filename := c.LogFile
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(home, filename)
		}
		rotator := &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    c.LogMaxSizeMB,
			MaxBackups: c.LogMaxBackups,
			MaxAge:     c.LogMaxAgeDays,
		}
		out = io.MultiWriter(out, rotator)
		closer = rotator
	}

	logger := log.NewTMLogger(log.NewSyncWriter(out)).With("module", Name)
	return log.NewFilter(logger, level), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
