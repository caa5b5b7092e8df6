/*
Command willcli manages time locked wills kept in a local state database.

Every call is signed with a local ed25519 key (see "willcli keys") and
executed at the current time, or at the time given with --at. The state is
initialized once from a genesis file with "willcli genesis".
*/
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

// cli holds the state shared by all commands of a single execution.
type cli struct {
	out    io.Writer
	errOut io.Writer

	cfg        Config
	configPath string
	logger     log.Logger
	metrics    *prometheus.Registry

	callMetrics *utils.Metrics

	// Flag values. Only flags set explicitly override the config file.
	home         string
	logLevel     string
	ticker       string
	debug        bool
	keyName      string
	at           int64
	printMetrics bool
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *cli) {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "willcli",
		Short:         "Time locked wills with equal or weighted inheritance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.configure(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.printMetrics {
				c.writeMetrics()
			}
		},
	}

	fl := root.PersistentFlags()
	fl.StringVar(&c.home, "home", "", "directory holding the keys, the state and config.toml")
	fl.StringVar(&c.configPath, "config", "", "path to the configuration file (default <home>/config.toml)")
	fl.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, error or none")
	fl.StringVar(&c.ticker, "ticker", "", "ticker used for amounts given without one")
	fl.BoolVar(&c.debug, "debug", false, "print full error details")
	fl.StringVar(&c.keyName, "key", "", "name of the local key signing the call")
	fl.Int64Var(&c.at, "at", 0, "unix time of the call (default now)")
	fl.BoolVar(&c.printMetrics, "metrics", false, "print call metrics when done")

	root.AddCommand(
		newKeysCmd(c),
		newGenesisCmd(c),
		newCreateCmd(c),
		newDepositCmd(c),
		newBeneficiaryCmd(c),
		newApproveCmd(c),
		newSharesCmd(c),
		newExpiryCmd(c),
		newOwnerCmd(c),
		newDistributeCmd(c),
		newShowCmd(c),
		newListCmd(c),
		newBalanceCmd(c),
		newVersionCmd(c),
	)
	return root, c
}

// configure loads the configuration file and applies the flags that were
// set on top of it.
func (c *cli) configure(cmd *cobra.Command) error {
	fl := cmd.Flags()
	cfg := defaultConfig()
	if fl.Changed("home") {
		cfg.Home = c.home
	}
	path := c.configPath
	if path == "" {
		path = filepath.Join(cfg.Home, "config.toml")
	}
	cfg, err := loadConfig(path, cfg)
	if err != nil {
		return err
	}
	if fl.Changed("home") {
		cfg.Home = c.home
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if fl.Changed("ticker") {
		cfg.DefaultTicker = c.ticker
	}
	if fl.Changed("debug") {
		cfg.Debug = c.debug
	}
	c.cfg = cfg

	level, err := log.AllowLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	c.logger = log.NewFilter(log.NewTMLogger(log.NewSyncWriter(c.errOut)), level).
		With("module", "willcli")
	c.metrics = prometheus.NewRegistry()
	return nil
}

func (c *cli) now() time.Time {
	if c.at != 0 {
		return time.Unix(c.at, 0)
	}
	return time.Now()
}

func (c *cli) writeMetrics() {
	families, err := c.metrics.Gather()
	if err != nil {
		fmt.Fprintf(c.errOut, "cannot gather metrics: %s\n", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels string
			for _, l := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", l.GetName(), l.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(c.errOut, "%s%s %v\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(c.errOut, "%s%s count=%d sum=%v\n", mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, bequest.Version())
			return nil
		},
	}
}

func main() {
	root, c := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		code, msg := errors.Info(err, c.cfg.Debug)
		fmt.Fprintf(os.Stderr, "error %d: %s\n", code, msg)
		os.Exit(1)
	}
}
