package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/multilog"
)

var frozen bool

func init() {
	demoCmd.Flags().BoolVar(&frozen, "frozen", false, "Use a frozen clock for deterministic output")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Log one entry per level and every field kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if frozen {
			old := xclock.Default()
			defer xclock.SetDefault(old)
			xclock.SetDefault(xclock.NewFrozen(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
		}

		d, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		runAllExamples()

		s := d.Stats()
		cmd.Printf("delivered=%d failed=%d filtered=%d\n", s.Delivered, s.Failed, s.Filtered)
		return nil
	},
}

func runAllExamples() {
	multilog.Debug().MsgFunc(func() string { return "only built when DEBUG passes" })

	multilog.Info().
		Str("service", "payments").
		Int("port", 8080).
		Dur("boot", 125*time.Millisecond).
		Msg("listening")

	multilog.Warning().Int("id", 102).Msg("quota low")

	multilog.Warning().Fields(
		multilog.Str("k_string", "v"),
		multilog.Int64("k_int64", -42),
		multilog.Uint64("k_uint64", 42),
		multilog.Float64("k_float64", 3.14159),
		multilog.Bool("k_bool", true),
		multilog.Dur("k_duration", 250*time.Millisecond),
		multilog.Time("k_time", time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)),
		multilog.Err("k_error", errors.New("boom")),
		multilog.Bytes("k_bytes", []byte{0xDE, 0xAD, 0xBE, 0xEF}),
		multilog.Any("k_any", map[string]any{"a": 1, "b": "two"}),
	).Msg("all-kinds")

	multilog.Error().Err(errors.New("connection reset")).Msg("boom")
}
