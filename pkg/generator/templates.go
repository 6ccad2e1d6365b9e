package generator

// Template data structures

type themeTemplateData struct {
	Name        string
	Inherits    string
	Description string
}

type hookTemplateData struct {
	Stage string
	Name  string
	Theme string
}

// Theme metadata template
var themeTemplate = `# Theme {{.Name}}
{{- if .Inherits}}
inherits: {{printf "%q" .Inherits}}
{{- end}}
{{- if .Description}}
description: {{printf "%q" .Description}}
{{- end}}
`

// Hook script templates
var hookTemplates = map[string]string{
	"blank": `#!/bin/sh
# {{.Stage}} hook '{{.Name}}'{{if .Theme}} of theme '{{.Theme}}'{{end}}
# $1 is the theme directory, $2 the theme name
set -e
`,
	"reload": `#!/bin/sh
# {{.Stage}} hook '{{.Name}}'{{if .Theme}} of theme '{{.Theme}}'{{end}}
# Reloads programs that read their colors at startup.
set -e

if command -v pkill >/dev/null 2>&1; then
	pkill -USR1 -x kitty || true
	pkill -USR1 -x termite || true
fi
`,
	"notify": `#!/bin/sh
# {{.Stage}} hook '{{.Name}}'{{if .Theme}} of theme '{{.Theme}}'{{end}}
set -e

if command -v notify-send >/dev/null 2>&1; then
	notify-send "themer" "$2 installed"
fi
`,
}

// HookTemplates returns the names of the available hook templates.
func HookTemplates() []string {
	return []string{"blank", "notify", "reload"}
}
