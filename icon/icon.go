// Package icon renders status symbols in the variant picked by icons.variant.
package icon

import (
	"github.com/replaysync/replaysync/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

type variant struct {
	name string
	pick func(*iconDef) string
}

// variants in the order completions list them.
var variants = []variant{
	{"plain", func(d *iconDef) string { return d.plain }},
	{"emoji", func(d *iconDef) string { return d.emoji }},
	{"nerd", func(d *iconDef) string { return d.nerd }},
	{"kaomoji", func(d *iconDef) string { return d.kaomoji }},
	{"squares", func(d *iconDef) string { return d.squares }},
}

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return lo.Map(variants, func(v variant, _ int) string {
		return v.name
	})
}

// Get renders i in the configured variant, or returns "" if the variant is unknown.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	current := viper.GetString(key.IconsVariant)
	for _, v := range variants {
		if v.name == current {
			return v.pick(def)
		}
	}
	return ""
}
