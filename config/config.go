// Package config loads rdfproof settings from a yaml file, RDFPROOF_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/pilacorp/go-rdf-proof/crypto"
	"github.com/pilacorp/go-rdf-proof/internal/logging"
	"github.com/pilacorp/go-rdf-proof/pipeline"
	"github.com/pilacorp/go-rdf-proof/proof"
	"github.com/pilacorp/go-rdf-proof/rdf"
	"github.com/pilacorp/go-rdf-proof/signer"
	"github.com/pilacorp/go-rdf-proof/sink"
)

// Config file lookup
const (
	ConfigName = "rdfproof"
	EnvPrefix  = "RDFPROOF"
)

// Keys
const (
	KeySubject            = "subject"
	KeyProofType          = "proof_type"
	KeyVerificationMethod = "verification_method"
	KeyProofPurpose       = "proof_purpose"
	KeyDescription        = "description"
	KeyContext            = "context"
	KeyMaxSize            = "max_size"
	KeyCapacity           = "capacity"
	KeyOutput             = "output"
	KeySerial             = "serial"
	KeyKeyFile            = "key_file"
	KeyCurve              = "curve"
	KeyRemoteEndpoint     = "remote.endpoint"
	KeyRemoteAPIKey       = "remote.api_key"
	KeyRemoteTimeout      = "remote.timeout"
	KeyValidateSchema     = "validate_schema"
	KeyLogLevel           = "log_level"
)

// Default values
const (
	DefaultKeyFile  = "rdfproof_key.yaml"
	DefaultCurve    = string(crypto.CurveP256)
	DefaultLogLevel = "info"
)

// Environment variable names
const (
	EnvKeyFile        = "RDFPROOF_KEY_FILE"
	EnvRemoteEndpoint = "RDFPROOF_REMOTE_ENDPOINT"
	EnvRemoteAPIKey   = "RDFPROOF_REMOTE_API_KEY"
	EnvLogLevel       = "RDFPROOF_LOG_LEVEL"
)

var defaults = map[string]interface{}{
	KeySubject:            pipeline.DefaultSubject,
	KeyProofType:          pipeline.DefaultProofType,
	KeyVerificationMethod: pipeline.DefaultVerificationMethod,
	KeyProofPurpose:       pipeline.DefaultProofPurpose,
	KeyDescription:        proof.DefaultDescription,
	KeyContext:            proof.DefaultContext,
	KeyMaxSize:            proof.DefaultMaxSize,
	KeyCapacity:           rdf.DefaultCapacity,
	KeyOutput:             sink.DefaultFile,
	KeySerial:             true,
	KeyKeyFile:            DefaultKeyFile,
	KeyCurve:              DefaultCurve,
	KeyRemoteEndpoint:     "",
	KeyRemoteAPIKey:       "",
	KeyRemoteTimeout:      signer.DefaultRemoteTimeout,
	KeyValidateSchema:     true,
	KeyLogLevel:           DefaultLogLevel,
}

// Remote configures the optional remote signing service.
type Remote struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// Config is the resolved configuration.
type Config struct {
	Subject            string
	ProofType          string
	VerificationMethod string
	ProofPurpose       string
	Description        string
	Context            []string
	MaxSize            int
	Capacity           int
	Output             string
	Serial             bool
	KeyFile            string
	Curve              crypto.Curve
	Remote             Remote
	ValidateSchema     bool
	LogLevel           string
}

// New returns a viper instance with defaults, config paths and environment
// binding set up.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigType("yaml")
	v.SetConfigName(ConfigName)
	v.AddConfigPath("/etc/rdfproof/")
	v.AddConfigPath("$HOME/.rdfproof")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and resolves v into a Config. An
// explicit file path replaces the search paths.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && file == "" {
			logging.Entry().Debug("no config file found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	curve, err := crypto.ParseCurve(v.GetString(KeyCurve))
	if err != nil {
		return nil, errors.Wrap(err, "curve")
	}

	c := &Config{
		Subject:            v.GetString(KeySubject),
		ProofType:          v.GetString(KeyProofType),
		VerificationMethod: v.GetString(KeyVerificationMethod),
		ProofPurpose:       v.GetString(KeyProofPurpose),
		Description:        v.GetString(KeyDescription),
		Context:            v.GetStringSlice(KeyContext),
		MaxSize:            v.GetInt(KeyMaxSize),
		Capacity:           v.GetInt(KeyCapacity),
		Output:             v.GetString(KeyOutput),
		Serial:             v.GetBool(KeySerial),
		KeyFile:            v.GetString(KeyKeyFile),
		Curve:              curve,
		Remote: Remote{
			Endpoint: v.GetString(KeyRemoteEndpoint),
			APIKey:   v.GetString(KeyRemoteAPIKey),
			Timeout:  v.GetDuration(KeyRemoteTimeout),
		},
		ValidateSchema: v.GetBool(KeyValidateSchema),
		LogLevel:       v.GetString(KeyLogLevel),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.MaxSize < 1 {
		return errors.Errorf("%s must be positive, got %d", KeyMaxSize, c.MaxSize)
	}
	if c.Capacity < 1 {
		return errors.Errorf("%s must be positive, got %d", KeyCapacity, c.Capacity)
	}
	if len(c.Context) == 0 {
		return errors.Errorf("%s must not be empty", KeyContext)
	}
	if c.Remote.Endpoint != "" {
		if c.Remote.Timeout <= 0 {
			return errors.Errorf("%s must be positive, got %s", KeyRemoteTimeout, c.Remote.Timeout)
		}
		// The remote service signs SHA-256 digests, which only the secp256k1
		// verifier checks.
		if c.Curve != crypto.CurveSecp256k1 {
			return errors.Errorf("%s requires %s %s, got %s", KeyRemoteEndpoint, KeyCurve, crypto.CurveSecp256k1, c.Curve)
		}
	}
	return nil
}

// Builder returns a document builder for the configured layout.
func (c *Config) Builder() *proof.Builder {
	return proof.NewBuilder(
		proof.WithMaxSize(c.MaxSize),
		proof.WithDescription(c.Description),
		proof.WithContext(c.Context...),
	)
}

// PipelineOpts returns the pipeline options the configuration describes.
func (c *Config) PipelineOpts() []pipeline.Opt {
	opts := []pipeline.Opt{
		pipeline.WithSubject(c.Subject),
		pipeline.WithProofType(c.ProofType),
		pipeline.WithVerificationMethod(c.VerificationMethod),
		pipeline.WithProofPurpose(c.ProofPurpose),
		pipeline.WithCapacity(c.Capacity),
		pipeline.WithBuilder(c.Builder()),
	}
	if c.ValidateSchema {
		opts = append(opts, pipeline.WithSchemaValidation())
	}
	return opts
}

// Signer returns the remote signer when an endpoint is configured, otherwise
// a local signer over the key file.
func (c *Config) Signer() (signer.Signer, error) {
	if c.Remote.Endpoint != "" {
		s, err := signer.NewRemoteSigner(c.Remote.Endpoint, c.Remote.APIKey, signer.WithTimeout(c.Remote.Timeout))
		if err != nil {
			return nil, errors.Wrap(err, "remote signer")
		}
		return s, nil
	}
	s, err := signer.NewFromKeyFile(c.KeyFile)
	if err != nil {
		return nil, errors.Wrapf(err, "loading key file %s", c.KeyFile)
	}
	return s, nil
}

// Verifier returns a verifier over the key file's public key.
func (c *Config) Verifier() (signer.Verifier, error) {
	v, err := signer.NewVerifierFromKeyFile(c.KeyFile)
	if err != nil {
		return nil, errors.Wrapf(err, "loading key file %s", c.KeyFile)
	}
	return v, nil
}
