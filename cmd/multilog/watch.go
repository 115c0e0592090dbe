package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/multilog"
	"github.com/trickstertwo/multilog/config"
)

var interval time.Duration

func init() {
	watchCmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Heartbeat interval")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Log a heartbeat at every level, following level changes in the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, path, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		if path == "" {
			return errors.New("watch needs a config file")
		}

		ctx := cmd.Context()
		go func() {
			err := config.Watch(ctx, path, d, func(err error) {
				cmd.PrintErrln("reload:", err)
			})
			if err != nil {
				cmd.PrintErrln(err)
			}
		}()

		tick := time.NewTicker(interval)
		defer tick.Stop()
		for n := 1; ; n++ {
			for _, l := range multilog.Levels {
				d.Log(l, func() string { return "heartbeat" }, multilog.Int("n", n))
			}
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
			}
		}
	},
}
