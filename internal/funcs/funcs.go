package funcs

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var TemplateFuncs = map[string]any{
	"now":   time.Now,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"title": title,
	"formatTime": func(format string, t time.Time) string {
		return t.Format(format)
	},
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}
