package config

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
}

type JwtConfig struct {
	Secret string `yaml:"secret" json:"secret"`
	Expire int    `yaml:"expire" json:"expire"` // token lifetime in hours
}

// BlobstoreConfig selects where uploaded product images are stored.
// type is "local" or "sftp"; PublicURL is the base under which stored
// objects are reachable by clients.
type BlobstoreConfig struct {
	Type      string `yaml:"type" json:"type"`
	PublicURL string `yaml:"public_url" json:"public_url"`
	SftpHost  string `yaml:"sftp_host" json:"sftp_host"`
	SftpPort  int    `yaml:"sftp_port" json:"sftp_port"`
	SftpUser  string `yaml:"sftp_user" json:"sftp_user"`
	SftpPass  string `yaml:"sftp_passwd" json:"sftp_passwd"`
	SftpDir   string `yaml:"sftp_dir" json:"sftp_dir"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Database  DBConfig        `yaml:"database" json:"database"`
	Jwt       JwtConfig       `yaml:"jwt" json:"jwt"`
	Blobstore BlobstoreConfig `yaml:"blobstore" json:"blobstore"`
	Logger    LogConfig       `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "envatex",
		Location: "America/Mexico_City",
		Workdir:  "/var/envatex",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 8000,
	},
	Database: DBConfig{
		Type:   "sqlite",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "envatex",
		User:   "postgres",
		Passwd: "",
	},
	Jwt: JwtConfig{
		Secret: "envatex-secret",
		Expire: 24,
	},
	Blobstore: BlobstoreConfig{
		Type:      "local",
		PublicURL: "/uploads",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/envatex/envatex.log",
	},
}

func setEnvStringValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

// LoadConfig reads the YAML configuration file when one exists and then
// applies ENVATEX_* environment overrides on top.
func LoadConfig(cfile string) *AppConfig {
	defaults := *DefaultAppConfig
	cfg := &defaults
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					panic(errors.Wrap(err, "parse config file"))
				}
			}
		}
	}

	setEnvStringValue("ENVATEX_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("ENVATEX_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvStringValue("ENVATEX_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("ENVATEX_WEB_PORT", &cfg.Web.Port)
	setEnvStringValue("ENVATEX_DATABASE_TYPE", &cfg.Database.Type)
	setEnvStringValue("ENVATEX_DATABASE_HOST", &cfg.Database.Host)
	setEnvIntValue("ENVATEX_DATABASE_PORT", &cfg.Database.Port)
	setEnvStringValue("ENVATEX_DATABASE_NAME", &cfg.Database.Name)
	setEnvStringValue("ENVATEX_DATABASE_USER", &cfg.Database.User)
	setEnvStringValue("ENVATEX_DATABASE_PASSWD", &cfg.Database.Passwd)
	setEnvStringValue("ENVATEX_JWT_SECRET", &cfg.Jwt.Secret)
	setEnvIntValue("ENVATEX_JWT_EXPIRE", &cfg.Jwt.Expire)
	setEnvStringValue("ENVATEX_BLOBSTORE_TYPE", &cfg.Blobstore.Type)
	setEnvStringValue("ENVATEX_BLOBSTORE_PUBLIC_URL", &cfg.Blobstore.PublicURL)
	setEnvStringValue("ENVATEX_BLOBSTORE_SFTP_HOST", &cfg.Blobstore.SftpHost)
	setEnvIntValue("ENVATEX_BLOBSTORE_SFTP_PORT", &cfg.Blobstore.SftpPort)
	setEnvStringValue("ENVATEX_BLOBSTORE_SFTP_USER", &cfg.Blobstore.SftpUser)
	setEnvStringValue("ENVATEX_BLOBSTORE_SFTP_PASSWD", &cfg.Blobstore.SftpPass)
	setEnvStringValue("ENVATEX_BLOBSTORE_SFTP_DIR", &cfg.Blobstore.SftpDir)
	setEnvStringValue("ENVATEX_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("ENVATEX_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvStringValue("ENVATEX_LOGGER_FILENAME", &cfg.Logger.Filename)

	return cfg
}

// UploadsDir returns the directory used by the local blob store.
func (c *AppConfig) UploadsDir() string {
	return path.Join(c.System.Workdir, "uploads")
}
