package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/multilog/sink/file"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the log file named by --file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if fileName == "" {
			return errors.New("clear needs --file")
		}
		var opts []file.Option
		if fileDir != "" {
			opts = append(opts, file.WithDir(fileDir))
		}
		path, err := file.Resolve(fileName, opts...)
		if err != nil {
			return err
		}
		if err := file.Remove(path); err != nil {
			return err
		}
		cmd.Println("removed", path)
		return nil
	},
}
