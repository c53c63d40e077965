// Package cmd implements the replaysync command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/replaysync/replaysync/color"
	"github.com/replaysync/replaysync/config"
	"github.com/replaysync/replaysync/constant"
	"github.com/replaysync/replaysync/filesystem"
	"github.com/replaysync/replaysync/history"
	"github.com/replaysync/replaysync/icon"
	"github.com/replaysync/replaysync/key"
	"github.com/replaysync/replaysync/log"
	"github.com/replaysync/replaysync/style"
	"github.com/replaysync/replaysync/tui"
	"github.com/replaysync/replaysync/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "Replay playback status endpoint")
	lo.Must0(viper.BindPFlag(key.SyncEndpoint, rootCmd.PersistentFlags().Lookup("endpoint")))

	rootCmd.Flags().IntP("interval", "i", 0, "Poll interval while syncing, in milliseconds")
	lo.Must0(viper.BindPFlag(key.SyncIntervalMs, rootCmd.Flags().Lookup("interval")))

	rootCmd.Flags().BoolP("write-history", "H", true, "Remember opened media for --continue")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.Flags().Lookup("write-history")))

	rootCmd.Flags().BoolP("continue", "c", false, "Reopen the most recently opened media")
	rootCmd.MarkFlagsMutuallyExclusive("continue", "version")
}

var rootCmd = &cobra.Command{
	Use:   constant.App + " [file]",
	Short: "Play a commentary track in lock-step with a live game replay",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Play a commentary track in lock-step with a live game replay"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(validateOverrides(key.SyncEndpoint, key.SyncIntervalMs, key.IconsVariant))
		CheckDependencies(viper.GetString(key.PlayerBinary))

		media, err := startupMedia(args, lo.Must(cmd.Flags().GetBool("continue")))
		handleErr(err)

		handleErr(tui.Run(&tui.Options{Media: media}))
	},
}

// validateOverrides checks values that flags or the environment may have set.
func validateOverrides(keys ...string) error {
	errs := lo.FilterMap(keys, func(k string, _ int) (error, bool) {
		field := config.Default[k]
		err := field.Validate(viper.Get(k))
		return err, err != nil
	})
	return errors.Join(errs...)
}

func startupMedia(args []string, resume bool) (mo.Option[string], error) {
	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return mo.None[string](), err
		}
		return mo.Some(path), nil
	}

	if !resume {
		return mo.None[string](), nil
	}

	last, err := history.Last()
	if err != nil {
		return mo.None[string](), err
	}

	record, ok := last.Get()
	if !ok {
		return mo.None[string](), errors.New("history is empty, nothing to continue")
	}

	exists, err := filesystem.API().Exists(record.Path)
	if err != nil {
		return mo.None[string](), err
	}
	if !exists {
		if err := history.Remove(record.Path); err != nil {
			log.Warnf("forget %s: %v", record.Path, err)
		}
		return mo.None[string](), fmt.Errorf("last media %s is gone and was dropped from history: %w", record.Path, os.ErrNotExist)
	}

	log.Infof("continuing with %s", record)
	return mo.Some(record.Path), nil
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		if log.Enabled() {
			_, _ = fmt.Fprintln(os.Stderr, style.Faint("logs: "+where.Logs()))
		}
		os.Exit(1)
	}
}
