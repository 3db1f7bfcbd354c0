package scan

import (
	"regexp"
	"strings"
)

// HookSpec names the translation hook an AliasResolver looks for.
type HookSpec struct {
	// Module is the import source, for example "react-i18next".
	Module string
	// Hook is the exported hook name, for example "useTranslation".
	Hook string
	// Member is the destructured translate function, for example "t".
	Member string
}

// DefaultHookSpec returns the react-i18next useTranslation hook.
func DefaultHookSpec() HookSpec {
	return HookSpec{Module: "react-i18next", Hook: "useTranslation", Member: "t"}
}

// Resolution is the outcome of resolving one file.
type Resolution struct {
	// Imported reports whether the file imports the hook from Module.
	Imported bool
	// Aliases holds the local names bound to Member. Empty when the file does
	// not import the hook, or destructures the hook without Member.
	Aliases []string
}

// AliasResolver determines which local names call the translate function in
// a file that uses the translation hook.
type AliasResolver struct {
	spec     HookSpec
	importRe *regexp.Regexp
}

var destructureRe = regexp.MustCompile(`(?:const|let|var)\s*\{([^}]*)\}\s*=\s*([\p{L}_$][\p{L}\p{N}_$]*)\s*\(`)

// NewAliasResolver creates a resolver for spec.
func NewAliasResolver(spec HookSpec) *AliasResolver {
	// Named imports from the module, with an optional default import before
	// the braces: import Foo, { a, b as c } from 'module'
	importRe := regexp.MustCompile(
		`import\s+(?:[\p{L}_$][\p{L}\p{N}_$]*\s*,\s*)?\{([^}]*)\}\s*from\s*['"]` +
			regexp.QuoteMeta(spec.Module) + `['"]`)

	return &AliasResolver{spec: spec, importRe: importRe}
}

// Resolve inspects text. A file that imports the hook but never destructures
// it resolves to Member itself. Otherwise only the first destructuring
// assignment from a hook invocation is considered.
func (r *AliasResolver) Resolve(text string) Resolution {
	hooks := r.importedHookNames(text)
	if len(hooks) == 0 {
		return Resolution{}
	}

	for _, m := range destructureRe.FindAllStringSubmatch(text, -1) {
		if !hooks[m[2]] {
			continue
		}
		return Resolution{Imported: true, Aliases: r.memberAliases(m[1])}
	}

	return Resolution{Imported: true, Aliases: []string{r.spec.Member}}
}

// importedHookNames returns the local names the hook is imported under.
func (r *AliasResolver) importedHookNames(text string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range r.importRe.FindAllStringSubmatch(text, -1) {
		for _, spec := range strings.Split(m[1], ",") {
			imported, local := splitBinding(spec, " as ")
			if imported == r.spec.Hook {
				names[local] = true
			}
		}
	}
	return names
}

// memberAliases parses the body of an object pattern such as
// "t: translate, i18n" and returns the local names bound to Member.
func (r *AliasResolver) memberAliases(body string) []string {
	var aliases []string
	for _, prop := range strings.Split(body, ",") {
		// Drop default values: { t = fallback }
		if i := strings.Index(prop, "="); i >= 0 {
			prop = prop[:i]
		}
		key, local := splitBinding(prop, ":")
		if key == r.spec.Member && identRe.MatchString(local) {
			aliases = append(aliases, local)
		}
	}
	return aliases
}

// splitBinding splits "name<sep>local" into its trimmed halves. Without sep
// the local name equals the name.
func splitBinding(s, sep string) (name, local string) {
	name, local, found := strings.Cut(s, sep)
	name = strings.TrimSpace(name)
	if !found {
		return name, name
	}
	return name, strings.TrimSpace(local)
}
