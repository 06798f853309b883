// Package hocon parses a human-friendly configuration language: a superset
// of JSON with unquoted strings, trailing commas, newlines as element
// separators, and file/url/classpath include directives.
//
// Parse turns a document into a Value tree:
//
//	tree, err := hocon.Parse(`
//	    include file("defaults.conf")
//	    server {
//	        host: localhost
//	        port: 8080
//	        tags: [primary, eu]
//	    }
//	`)
//
// A document may omit its outermost braces, as above, and may also be a bare
// null, boolean or array; empty input parses to an empty object. Objects
// preserve field order and keep duplicate keys as separate entries.
// Merging duplicates, resolving include directives and `${path}`
// substitution are left to consumers.
//
// String leaves of the tree are sub-slices of the input text, so building a
// tree copies no string data and the tree keeps its source text reachable.
//
// Failures are reported as a *ParseError carrying the deepest position the
// grammar reached, what it expected there, and a caret-annotated excerpt of
// the offending line. No partial tree is ever returned.
package hocon
