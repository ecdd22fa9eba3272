package html

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// stylesheetAsset is the logical asset name resolved through the theme's
// AssetURL hook when one is configured.
const stylesheetAsset = "formkit.css"

type themeContext struct {
	Name          string
	Variant       string
	CSSVarsStyle  string
	StylesheetURL string
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		ctx.StylesheetURL = cfg.AssetURL(stylesheetAsset)
	}
	return ctx
}

// cssVarsStyle renders the theme's CSS custom properties as a :root block.
// Keys are sorted so output stays deterministic.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
