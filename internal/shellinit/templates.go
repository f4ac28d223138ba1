package shellinit

// posixTemplate renders the init script for zsh and bash.
const posixTemplate = `# shellkit init ({{ toUpper .Shell }}). Generated, do not edit.
{{ if .Path }}
# PATH
export PATH={{ dquote (printf "%s:$PATH" (join ":" .Path)) }}
{{ end }}
{{ if .Env }}
# Environment
{{- range .Env }}
export {{ .Key }}={{ dquote .Value }}
{{- end }}
{{ end }}
{{ if .OhMyZsh }}
# oh-my-zsh
export ZSH={{ dquote .FrameworkDir }}
ZSH_THEME={{ squote (.Theme | default "robbyrussell") }}
plugins=({{ join " " .Plugins }})
source "$ZSH/oh-my-zsh.sh"
{{ end }}
{{ if .Aliases }}
# Aliases
{{- range .Aliases }}
alias {{ .Key }}={{ squote .Value }}
{{- end }}
{{ end }}
{{ if .Lazy }}
# Lazy-loaded tools
{{- range $lt := .Lazy }}
_shellkit_lazy_{{ $lt.Ident }}() {
  unset -f _shellkit_lazy_{{ $lt.Ident }} {{ join " " $lt.Commands }}
  eval "$({{ $.Bin }} lazy {{ squote $lt.Name }})"
}
{{- range $lt.Commands }}
{{ . }}() { _shellkit_lazy_{{ $lt.Ident }}; {{ . }} "$@"; }
{{- end }}
{{- end }}
{{ end }}
{{ if .Prompt }}
# Prompt
{{- range .Prompt }}
{{ . }}
{{- end }}
{{ end }}
# Tree explorer
alias tp={{ squote (printf "%s pick" .Bin) }}
get_tree() { {{ .Bin }} tree "$@"; }
`

// fishTemplate renders the init script for fish.
const fishTemplate = `# shellkit init ({{ toUpper .Shell }}). Generated, do not edit.
{{ if .Path }}
# PATH
set -gx PATH {{ range .Path }}{{ dquote . }} {{ end }}$PATH
{{ end }}
{{ if .Env }}
# Environment
{{- range .Env }}
set -gx {{ .Key }} {{ dquote .Value }}
{{- end }}
{{ end }}
{{ if .Aliases }}
# Aliases
{{- range .Aliases }}
alias {{ .Key }} {{ squote .Value }}
{{- end }}
{{ end }}
{{ if .Lazy }}
# Lazy-loaded tools
{{- range $lt := .Lazy }}
{{- range $lt.Commands }}
function {{ . }}
  functions -e {{ join " " $lt.Commands }}
  {{ $.Bin }} lazy {{ squote $lt.Name }} | source
  {{ . }} $argv
end
{{- end }}
{{- end }}
{{ end }}
{{ if .Prompt }}
# Prompt
{{- range .Prompt }}
{{ . }}
{{- end }}
{{ end }}
# Tree explorer
alias tp {{ squote (printf "%s pick" .Bin) }}
function get_tree
  {{ .Bin }} tree $argv
end
`
