// Package config registers every setting with its default and wires them into viper.
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"text/template"

	"github.com/replaysync/replaysync/color"
	"github.com/replaysync/replaysync/constant"
	"github.com/replaysync/replaysync/icon"
	"github.com/replaysync/replaysync/key"
	"github.com/replaysync/replaysync/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var defaults = []Field{
	{
		Key:         key.SyncEndpoint,
		Value:       constant.DefaultEndpoint,
		Description: "Replay playback status endpoint exposed by the game client.\nTLS certificate verification is disabled for it",
		rule:        httpURL,
	},
	{
		Key:         key.SyncIntervalMs,
		Value:       100,
		Description: "Interval between status polls while sync is active, in milliseconds",
		rule:        intBetween(10, 60_000),
	},
	{
		Key:         key.SyncTimeoutMs,
		Value:       1000,
		Description: "Timeout of a single status request, in milliseconds",
		rule:        intBetween(10, 60_000),
	},
	{
		Key:         key.PlayerBinary,
		Value:       "mpv",
		Description: "Path or name of the mpv executable",
		rule:        nonEmpty,
	},
	{
		Key:         key.PlayerVolume,
		Value:       50,
		Description: "Volume applied when media is opened",
		rule:        intBetween(0, 100),
	},
	{
		Key:         key.TUIRefreshIntervalMs,
		Value:       1000,
		Description: "Interval between progress bar refreshes, in milliseconds",
		rule:        intBetween(50, 60_000),
	},
	{
		Key:         key.TUISeekStepMs,
		Value:       5000,
		Description: "Distance of a single manual seek, in milliseconds",
		rule:        intBetween(100, 600_000),
	},
	{
		Key:         key.HistorySave,
		Value:       true,
		Description: "Remember opened media for --continue and path suggestions",
	},
	{
		Key:         key.IconsVariant,
		Value:       "plain",
		Description: "Icons variant. nerd requires a nerd font",
		rule:        oneOf(icon.AvailableVariants()...),
	},
	{
		Key:         key.LogsWrite,
		Value:       false,
		Description: "Write logs",
	},
	{
		Key:         key.LogsLevel,
		Value:       "info",
		Description: "Log level, from least to most verbose",
		rule:        oneOf("panic", "fatal", "error", "warn", "info", "debug", "trace"),
	},
	{
		Key:         key.LogsJson,
		Value:       false,
		Description: "Use json format for logs",
	},
	{
		Key:         key.CliColored,
		Value:       true,
		Description: "Enable colored CLI output",
	},
}

// Default holds every field by key.
var Default = make(map[string]Field, len(defaults))

// EnvExposed lists the keys bound to environment variables, in registration order.
var EnvExposed []string

func init() {
	for _, f := range defaults {
		if _, exists := Default[f.Key]; exists {
			panic("duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ with .Allowed }}
{{ blue "Allowed:" }} {{ . }}{{ end }}`))
