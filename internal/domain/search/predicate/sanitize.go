package predicate

import "strings"

// metaEscaper escapes every character the store's pattern language treats
// as a wildcard, delimiter or operator. The set covers SQL-style wildcards
// (%, _) as well as the FT query syntax (braces, pipes, parens, quotes,
// field markers) so user text can never change the shape of a compiled
// predicate.
var metaEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
	`,`, `\,`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`[`, `\[`,
	`]`, `\]`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`!`, `\!`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`:`, `\:`,
	`;`, `\;`,
	`+`, `\+`,
	`&`, `\&`,
	`#`, `\#`,
	`?`, `\?`,
)

// Sanitize escapes pattern metacharacters in a user-supplied term so it
// can be embedded in a ContainsCI or Text node as a literal. Case is
// preserved; ContainsCI semantics fold case, not the sanitizer.
func Sanitize(term string) string {
	return metaEscaper.Replace(term)
}
