package config

import "strings"

// DatabaseConfig configures the MySQL connection. Either a full DSN/URL or
// discrete fields may be given; discrete fields fill in defaults.
type DatabaseConfig struct {
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

func (c DatabaseConfig) normalize() DatabaseConfig {
	c.DSN = strings.TrimSpace(c.DSN)
	c.URL = strings.TrimSpace(c.URL)
	c.Host = strings.TrimSpace(c.Host)
	c.User = strings.TrimSpace(c.User)
	c.Password = strings.TrimSpace(c.Password)
	c.Name = strings.TrimSpace(c.Name)
	c.Charset = strings.TrimSpace(c.Charset)
	c.Loc = strings.TrimSpace(c.Loc)

	if c.Host == "" {
		c.Host = defaultDBHost
	}
	if c.Port == 0 {
		c.Port = defaultDBPort
	}
	if c.User == "" {
		c.User = defaultDBUser
	}
	if c.Password == "" {
		c.Password = defaultDBPassword
	}
	if c.Name == "" {
		c.Name = defaultDBName
	}
	if c.Charset == "" {
		c.Charset = defaultDBCharset
	}
	if c.Loc == "" {
		c.Loc = defaultDBLoc
	}
	return c
}

// RedisConfig configures the Redis connection, either via URL or host/port.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       int    `yaml:"db"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	TLS      bool   `yaml:"tls"`
}

func (c RedisConfig) normalize() RedisConfig {
	c.URL = strings.TrimSpace(c.URL)
	c.Host = strings.TrimSpace(c.Host)
	c.Username = strings.TrimSpace(c.Username)
	if c.Host == "" {
		c.Host = defaultRedisHost
	}
	if c.Port == 0 {
		c.Port = defaultRedisPort
	}
	if c.DB < 0 {
		c.DB = defaultRedisDB
	}
	return c
}

// PathsConfig overrides runtime directories; relative paths resolve against
// the executable directory.
type PathsConfig struct {
	StaticDir string `yaml:"static_dir"`
}

// StorageConfig configures the upload pipeline: validation limits plus an
// optional S3-compatible bucket. With S3 disabled, uploads land in the local
// static dir and are served back by this process.
type StorageConfig struct {
	// AllowedExtensions is a comma-separated allow-list ("jpg,png,webp,pdf").
	// Empty means any extension.
	AllowedExtensions string    `yaml:"allowed_extensions"`
	MaxSizeMB         int       `yaml:"max_size_mb"`
	S3                S3Options `yaml:"s3"`
}

// S3Options configures the S3-compatible object store.
type S3Options struct {
	Enable          bool   `yaml:"enable"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	CustomDomain    string `yaml:"custom_domain"`
	KeyPrefix       string `yaml:"key_prefix"`
}

func (c StorageConfig) normalize() StorageConfig {
	c.AllowedExtensions = strings.TrimSpace(c.AllowedExtensions)
	if c.MaxSizeMB < 0 {
		c.MaxSizeMB = 0
	}
	c.S3.Bucket = strings.TrimSpace(c.S3.Bucket)
	c.S3.Region = strings.TrimSpace(c.S3.Region)
	c.S3.AccessKeyID = strings.TrimSpace(c.S3.AccessKeyID)
	c.S3.SecretAccessKey = strings.TrimSpace(c.S3.SecretAccessKey)
	c.S3.Endpoint = strings.TrimSpace(c.S3.Endpoint)
	c.S3.CustomDomain = strings.TrimRight(strings.TrimSpace(c.S3.CustomDomain), "/")
	c.S3.KeyPrefix = strings.Trim(strings.TrimSpace(c.S3.KeyPrefix), "/")
	return c
}
