package cmd

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"text/template"

	"github.com/replaysync/replaysync/color"
	"github.com/replaysync/replaysync/constant"
	"github.com/replaysync/replaysync/key"
	"github.com/replaysync/replaysync/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
}

type buildInfo struct {
	App, Version, Revision, BuiltAt, BuiltBy string
	Platform                                 string
	Endpoint                                 string
	Player                                   string
	PlayerFound                              bool
}

func currentBuild() buildInfo {
	binary := viper.GetString(key.PlayerBinary)
	player, err := exec.LookPath(binary)
	if err != nil {
		player = binary
	}

	return buildInfo{
		App:         constant.App,
		Version:     constant.Version,
		Revision:    constant.Revision,
		BuiltAt:     strings.TrimSpace(constant.BuiltAt),
		BuiltBy:     constant.BuiltBy,
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Endpoint:    viper.GetString(key.SyncEndpoint),
		Player:      player,
		PlayerFound: err == nil,
	}
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
	"green":   style.Fg(color.Green),
	"red":     style.Fg(color.Red),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Commit" }}      {{ bold .Revision }}
  {{ faint "Built" }}       {{ bold .BuiltAt }} by {{ bold .BuiltBy }}
  {{ faint "Platform" }}    {{ bold .Platform }}
  {{ faint "Endpoint" }}    {{ green .Endpoint }}
  {{ faint "Player" }}      {{ if .PlayerFound }}{{ green .Player }}{{ else }}{{ red .Player }} (not in PATH){{ end }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, build and player information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), currentBuild()))
	},
}
