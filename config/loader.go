package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goto/salt/config"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// FS is the filesystem config files are read from, swapped for a memory fs in tests
var FS = afero.NewReadOnlyFs(afero.NewOsFs())

// LoadServerConfig reads the server config from filePath, or from folio.yaml in
// the working directory or next to the executable when filePath is empty.
// Every key can be overridden with a FOLIO_ prefixed env variable, e.g. FOLIO_SERVE_DB_DSN.
func LoadServerConfig(filePath string) (*ServerConfig, error) {
	cfg := &ServerConfig{}

	v := viper.New()
	v.SetFs(FS)

	opts := []config.LoaderOption{
		config.WithViper(v),
		config.WithName(DefaultFilename),
		config.WithType(DefaultFileExtension),
		config.WithEnvPrefix(EnvPrefix),
		config.WithEnvKeyReplacer(".", "_"),
	}

	if filePath != "" {
		if err := validateFilepath(FS, filePath); err != nil {
			return nil, err
		}
		opts = append(opts, config.WithFile(filePath))
	} else {
		opts = append(opts, config.WithPath(currentPath()), config.WithPath(executablePath()))
	}

	l := config.NewLoader(opts...)
	if err := l.Load(cfg); err != nil && !errors.As(err, &config.ConfigFileNotFoundError{}) {
		return nil, err
	}

	if err := validateServerConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateServerConfig(cfg *ServerConfig) error {
	var missing []string
	if cfg.Serve.DB.DSN == "" {
		missing = append(missing, "serve.db.dsn")
	}
	if cfg.Admin.Email == "" {
		missing = append(missing, "admin.email")
	}
	if cfg.Admin.Password == "" {
		missing = append(missing, "admin.password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if cfg.Serve.Port == cfg.Serve.PortGRPC {
		return fmt.Errorf("serve.port and serve.port_grpc should differ, both are %d", cfg.Serve.Port)
	}
	return nil
}

func validateFilepath(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a file", path)
	}
	return nil
}

func currentPath() string {
	p, err := os.Getwd()
	if err != nil {
		return "."
	}
	return p
}

func executablePath() string {
	p, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(p)
}
