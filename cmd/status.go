package cmd

import (
	"context"
	"encoding/json"
	"os"
	"reflect"
	"text/template"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/replaysync/replaysync/color"
	"github.com/replaysync/replaysync/key"
	"github.com/replaysync/replaysync/network"
	"github.com/replaysync/replaysync/spectator"
	"github.com/replaysync/replaysync/style"
	"github.com/replaysync/replaysync/syncer"
	"github.com/replaysync/replaysync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolP("json", "j", false, "Print the raw status document as json")
	statusCmd.Flags().Bool("schema", false, "Print the JSON schema of the status document")
	statusCmd.MarkFlagsMutuallyExclusive("json", "schema")
	statusCmd.SetOut(os.Stdout)
}

var statusTemplate = lo.Must(template.New("status").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"purple": style.Fg(color.Purple),
	"yesno": func(b bool) string {
		if b {
			return style.Fg(color.Green)("yes")
		}
		return style.Fg(color.Red)("no")
	},
	"ms": util.FormatMs,
}).Parse(`{{ purple "▇▇▇" }} {{ purple .Endpoint }}

  {{ faint "Time" }}      {{ bold (ms .Status.TimeMs) }} / {{ bold (ms .Status.LengthMs) }}
  {{ faint "Speed" }}     {{ bold (printf "x%.2g" .Status.Speed) }}
  {{ faint "Paused" }}    {{ yesno .Status.Paused }}
  {{ faint "Seeking" }}   {{ yesno .Status.Seeking }}
  {{ faint "Holding" }}   {{ yesno .Holding }}
`))

// statusCmd polls the replay endpoint once, the same way a sync tick does.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Poll the replay playback endpoint once",
	Long: `Poll the replay playback endpoint once and print what a sync tick would see.
"Holding" tells whether the local player would be kept paused.`,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Namer = func(t reflect.Type) string {
				return "spectator." + t.Name()
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(reflector.Reflect(&spectator.Status{})))
			return
		}

		timeout := time.Duration(viper.GetInt(key.SyncTimeoutMs)) * time.Millisecond
		client := spectator.NewClient(viper.GetString(key.SyncEndpoint), network.Loopback(timeout))

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		status, err := client.FetchStatus(ctx)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(status))
			return
		}

		handleErr(statusTemplate.Execute(cmd.OutOrStdout(), struct {
			Endpoint string
			Status   spectator.Status
			Holding  bool
		}{
			Endpoint: client.Endpoint(),
			Status:   status,
			Holding:  syncer.ShouldPause(status),
		}))
	},
}
