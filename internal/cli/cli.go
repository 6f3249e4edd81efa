package cli

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pilacorp/go-rdf-proof/config"
	"github.com/pilacorp/go-rdf-proof/internal/logging"
	"github.com/pilacorp/go-rdf-proof/pipeline"
)

type app struct {
	v     *viper.Viper
	clock pipeline.Clock
	cfg   *config.Config
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the rdfproof command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{v: config.New(), clock: pipeline.SystemClock{}})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "rdfproof",
		Short:             "Build, sign and verify RDF proof documents",
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}

	f := rootCmd.PersistentFlags()
	f.String("config", "", "config file (default searches ./rdfproof.yaml, $HOME/.rdfproof, /etc/rdfproof)")
	f.BoolP("verbose", "v", false, "increase verbosity")
	f.String("log-level", config.DefaultLogLevel, "log level")
	f.String("key-file", config.DefaultKeyFile, "signing key file")
	f.String("curve", config.DefaultCurve, "signing curve: P-256 or secp256k1")
	f.StringP("output", "o", "", "output document file")
	f.Bool("serial", true, "also write the document to stdout")

	a.v.BindPFlag(config.KeyLogLevel, f.Lookup("log-level"))
	a.v.BindPFlag(config.KeyKeyFile, f.Lookup("key-file"))
	a.v.BindPFlag(config.KeyCurve, f.Lookup("curve"))
	a.v.BindPFlag(config.KeyOutput, f.Lookup("output"))
	a.v.BindPFlag(config.KeySerial, f.Lookup("serial"))

	regCommands(rootCmd, a)

	return rootCmd
}

func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(a.v, file)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	a.cfg = cfg

	logging.Entry().Logger.SetOutput(cmd.ErrOrStderr())
	if err := logging.SetLevelName(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logging.SetLevel(logrus.DebugLevel)
		logging.Entry().WithField("level", "debug").Debug("setting log level")
	}
	return nil
}
