// Package config loads the kvpfs CLI configuration.
//
// The configuration is a YAML file:
//
//	root_path: ./db
//	file_prefix: _key_
//	file_extension: json
//	collections: [users, posts]
//	backend: s3
//	s3:
//	  bucket: my-bucket
//	  prefix: kv
//	  region: us-east-1
//	  endpoint: http://localhost:9000
//	  path_style: true
//
// Every key is optional. S3 credentials are read from the standard AWS
// environment variables.
package config

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"github.com/kvpfs/kvpfs"
	"github.com/kvpfs/kvpfs/filesystem"
	"github.com/kvpfs/kvpfs/filesystem/s3fs"
)

// EnvConfig names the environment variable consulted when no config file is
// given on the command line.
const EnvConfig = "KVPFS_CONFIG"

// Backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config holds the CLI configuration.
type Config struct {
	RootPath      string   `yaml:"root_path,omitempty"`
	FilePrefix    string   `yaml:"file_prefix,omitempty"`
	FileExtension string   `yaml:"file_extension,omitempty"`
	Collections   []string `yaml:"collections,omitempty"`
	Backend       string   `yaml:"backend,omitempty"`
	S3            S3Config `yaml:"s3,omitempty"`
}

// S3Config configures the s3 backend.
type S3Config struct {
	Bucket    string `yaml:"bucket,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	PathStyle bool   `yaml:"path_style,omitempty"`
}

// Load reads the configuration from path. If path is empty, $KVPFS_CONFIG is
// used, and if that is unset too, an empty configuration is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, xerrors.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", BackendLocal:
		return nil
	case BackendS3:
		if c.S3.Bucket == "" {
			return xerrors.New("s3 backend requires s3.bucket")
		}
		return nil
	}
	return xerrors.Errorf("unknown backend %q", c.Backend)
}

// Filesystem returns the filesystem for the configured backend.
func (c *Config) Filesystem() (filesystem.Filesystem, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Backend != BackendS3 {
		return filesystem.Default(), nil
	}
	return s3fs.New(c.s3Client(), c.S3.Bucket, c.S3.Prefix), nil
}

func (c *Config) s3Client() *s3.Client {
	opts := s3.Options{
		Region:       c.S3.Region,
		UsePathStyle: c.S3.PathStyle,
		Credentials:  aws.CredentialsProviderFunc(envCredentials),
	}
	if opts.Region == "" {
		opts.Region = os.Getenv("AWS_REGION")
	}
	if c.S3.Endpoint != "" {
		opts.BaseEndpoint = aws.String(c.S3.Endpoint)
	}
	return s3.New(opts)
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, xerrors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}

// Options returns the store options described by c.
func (c *Config) Options() (*kvpfs.Options, error) {
	fs, err := c.Filesystem()
	if err != nil {
		return nil, err
	}
	return &kvpfs.Options{
		RootPath:      c.RootPath,
		FilePrefix:    c.FilePrefix,
		FileExtension: c.FileExtension,
		Collections:   c.Collections,
		Filesystem:    fs,
	}, nil
}
