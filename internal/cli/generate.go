package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pilacorp/go-rdf-proof/config"
	"github.com/pilacorp/go-rdf-proof/errs"
	"github.com/pilacorp/go-rdf-proof/internal/logging"
	"github.com/pilacorp/go-rdf-proof/pipeline"
	"github.com/pilacorp/go-rdf-proof/sink"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build, sign and emit a proof document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			retries, _ := cmd.Flags().GetInt("retries")
			_, err := a.generate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), retries)
			return err
		},
	}

	cmd.Flags().Int("retries", 0, "retry a run that failed to sign or emit this many times")
	cmd.Flags().String("subject", "", "credential subject (empty uses the configured subject)")
	a.v.BindPFlag(config.KeySubject, cmd.Flags().Lookup("subject"))

	return cmd
}

// generate runs the pipeline, retrying sign and emit failures with backoff.
func (a *app) generate(ctx context.Context, out, status io.Writer, retries int) (*pipeline.Result, error) {
	s, err := a.cfg.Signer()
	if err != nil {
		return nil, err
	}

	file := sink.NewFile(a.cfg.Output)
	sinks := sink.Multi{file}
	if a.cfg.Serial {
		sinks = append(sinks, sink.NewWriter(out))
	}

	p, err := pipeline.New(a.clock, s, sinks, a.cfg.PipelineOpts()...)
	if err != nil {
		return nil, errors.Wrap(err, "creating pipeline")
	}

	bo := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	for {
		res, err := p.Run(ctx)
		if err == nil {
			fmt.Fprintf(status, "Signature: %s\n", res.Signature)
			fmt.Fprintf(status, "CID: %s\n", res.CID)
			fmt.Fprintf(status, "Output saved to %s\n", file.Path())
			return res, nil
		}
		if int(bo.Attempt()) >= retries || !retryable(err) {
			return nil, errors.Wrap(err, "generating document")
		}

		d := bo.Duration()
		logging.WithError(err).WithField("retry_in", d).Warn("run failed, retrying")
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "generating document")
		}
	}
}

func retryable(err error) bool {
	return errs.IsKind(err, errs.KindSign) || errs.IsKind(err, errs.KindSink)
}
