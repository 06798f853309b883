package hocon

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse parses a configuration document into its value tree. Empty and
// whitespace-only input yields an object with zero fields. Text left over
// after the outermost match is discarded; use ParsePrefix to observe it.
func Parse(input string) (Value, error) {
	v, _, err := ParsePrefix(input)
	return v, err
}

// ParsePrefix parses the leading document of input and returns it together
// with the unconsumed remainder. On failure the remainder is the whole input.
//
// A document is an object (braced or braceless), a bare null, boolean or
// array, or empty content. Other value forms are accepted only inside
// objects and arrays, never as a whole document.
func ParsePrefix(input string) (Value, string, error) {
	c := &cursor{input: input}
	c.skipWhitespace()
	if c.eof() {
		return Object(), "", nil
	}
	// Object before the bare keywords: a braceless document whose first
	// key happens to be "null" or "true" must not read as that keyword.
	if v, ok := c.parseObject(); ok {
		return v, c.rest(), nil
	}
	if c.lit("null") {
		return Null(), c.rest(), nil
	}
	if c.lit("true") {
		return Boolean(true), c.rest(), nil
	}
	if c.lit("false") {
		return Boolean(false), c.rest(), nil
	}
	if v, ok := c.parseArray(); ok {
		return v, c.rest(), nil
	}
	return Value{}, input, c.parseError()
}

// cursor walks the input byte by byte with explicit backtracking: rules save
// their start position and restore it when they fail. The deepest failing
// position and what was expected there survive backtracking and become the
// ParseError.
type cursor struct {
	input string
	pos   int

	errPos      int
	errExpected []string
}

func (c *cursor) eof() bool { return c.pos >= len(c.input) }

func (c *cursor) rest() string { return c.input[c.pos:] }

// lit consumes the literal s if the input starts with it.
func (c *cursor) lit(s string) bool {
	if strings.HasPrefix(c.rest(), s) {
		c.pos += len(s)
		return true
	}
	return false
}

// expected records what the grammar wanted at the current position. Only the
// deepest position seen so far is kept; expectations at the same depth merge.
func (c *cursor) expected(what string) {
	if c.pos < c.errPos {
		return
	}
	if c.pos > c.errPos {
		c.errPos = c.pos
		c.errExpected = c.errExpected[:0]
	}
	for _, e := range c.errExpected {
		if e == what {
			return
		}
	}
	c.errExpected = append(c.errExpected, what)
}

func (c *cursor) parseError() *ParseError {
	return newParseError(c.input, c.errPos, c.errExpected)
}

// isWhitespace matches Unicode whitespace plus the legacy control characters
// the language treats as such (file/group/record/unit separators).
func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r':
		return true
	case '\u001C', '\u001D', '\u001E', '\u001F':
		return true
	}
	return unicode.IsSpace(r)
}

func (c *cursor) skipWhitespace() {
	for !c.eof() {
		r, size := utf8.DecodeRuneInString(c.rest())
		if !isWhitespace(r) {
			return
		}
		c.pos += size
	}
}

// skipInlineWhitespace stops at newlines, which separate array elements.
func (c *cursor) skipInlineWhitespace() {
	for !c.eof() {
		r, size := utf8.DecodeRuneInString(c.rest())
		if r == '\n' || !isWhitespace(r) {
			return
		}
		c.pos += size
	}
}

// isUnquotedDelimiter lists the characters that terminate an unquoted string.
func isUnquotedDelimiter(r rune) bool {
	switch r {
	case '$', '"', '{', '}', '[', ']', ':', '=', ',', '+', '#', '`', '^', '?', '!', '@', '*', '&', '\\':
		return true
	}
	return false
}

// parseUnquotedString consumes the maximal run of characters that are not
// whitespace, not a delimiter, and not the start of a // comment. At least
// one character is required.
func (c *cursor) parseUnquotedString() (string, bool) {
	start := c.pos
	for !c.eof() {
		if strings.HasPrefix(c.rest(), "//") {
			break
		}
		r, size := utf8.DecodeRuneInString(c.rest())
		if isWhitespace(r) || isUnquotedDelimiter(r) {
			break
		}
		c.pos += size
	}
	if c.pos == start {
		return "", false
	}
	return c.input[start:c.pos], true
}

func isQuotedStringByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '.'
}

// parseQuotedString consumes a double-quoted string. The body is the maximal
// (possibly empty) run of ASCII letters, digits and dots; backslash escapes
// are not processed, so an embedded quote cannot be represented.
func (c *cursor) parseQuotedString() (string, bool) {
	start := c.pos
	if !c.lit(`"`) {
		return "", false
	}
	bodyStart := c.pos
	for !c.eof() && isQuotedStringByte(c.input[c.pos]) {
		c.pos++
	}
	body := c.input[bodyStart:c.pos]
	if !c.lit(`"`) {
		c.expected(`closing '"'`)
		c.pos = start
		return "", false
	}
	return body, true
}

// parseNumber scans a floating-point literal (optional sign, fraction and
// exponent) and converts it with strconv. A literal too large for a float64
// saturates to an infinity rather than failing.
func (c *cursor) parseNumber() (Value, bool) {
	start := c.pos
	if !c.eof() && (c.input[c.pos] == '+' || c.input[c.pos] == '-') {
		c.pos++
	}
	digits := c.scanDigits()
	if digits > 0 {
		if !c.eof() && c.input[c.pos] == '.' {
			c.pos++
			c.scanDigits()
		}
	} else {
		if c.eof() || c.input[c.pos] != '.' {
			c.pos = start
			return Value{}, false
		}
		c.pos++
		if c.scanDigits() == 0 {
			c.pos = start
			return Value{}, false
		}
	}
	if !c.eof() && (c.input[c.pos] == 'e' || c.input[c.pos] == 'E') {
		mark := c.pos
		c.pos++
		if !c.eof() && (c.input[c.pos] == '+' || c.input[c.pos] == '-') {
			c.pos++
		}
		if c.scanDigits() == 0 {
			c.pos = mark
		}
	}
	lit := c.input[start:c.pos]
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		c.pos = start
		return Value{}, false
	}
	return Number(f), true
}

func (c *cursor) scanDigits() int {
	n := 0
	for !c.eof() && c.input[c.pos] >= '0' && c.input[c.pos] <= '9' {
		c.pos++
		n++
	}
	return n
}

// parseInclude consumes an include directive: the word "include", optional
// whitespace, a resource kind, and a quoted path in parentheses.
func (c *cursor) parseInclude() (Inclusion, bool) {
	start := c.pos
	if !c.lit("include") {
		return Inclusion{}, false
	}
	c.skipWhitespace()
	kind, ok := c.parseInclusionKind()
	if !ok {
		c.pos = start
		return Inclusion{}, false
	}
	if !c.lit("(") {
		c.expected("'('")
		c.pos = start
		return Inclusion{}, false
	}
	path, ok := c.parseQuotedString()
	if !ok {
		c.expected("quoted path")
		c.pos = start
		return Inclusion{}, false
	}
	if !c.lit(")") {
		c.expected("')'")
		c.pos = start
		return Inclusion{}, false
	}
	return Inclusion{Kind: kind, Path: path}, true
}

func (c *cursor) parseInclusionKind() (InclusionKind, bool) {
	switch {
	case c.lit("url"):
		return IncludeURL, true
	case c.lit("file"):
		return IncludeFile, true
	case c.lit("classpath"):
		return IncludeClasspath, true
	}
	c.expected(`"url", "file" or "classpath"`)
	return 0, false
}

// parseValue tries each value form in priority order; the first match wins.
// Keyword matches are plain prefix matches, so "nullable" reads as null with
// "able" left unconsumed for the caller to deal with.
func (c *cursor) parseValue() (Value, bool) {
	if c.lit("null") {
		return Null(), true
	}
	if inc, ok := c.parseInclude(); ok {
		return Include(inc), true
	}
	if c.lit("true") {
		return Boolean(true), true
	}
	if c.lit("false") {
		return Boolean(false), true
	}
	if v, ok := c.parseNumber(); ok {
		return v, true
	}
	if v, ok := c.parseArray(); ok {
		return v, true
	}
	if v, ok := c.parseObject(); ok {
		return v, true
	}
	if s, ok := c.parseUnquotedString(); ok {
		return Unquoted(s), true
	}
	if s, ok := c.parseQuotedString(); ok {
		return Quoted(s), true
	}
	c.expected("value")
	return Value{}, false
}

// parseArray consumes a bracketed list. Elements are separated by a comma or
// a bare newline; a trailing comma is tolerated, as is whitespace around
// elements and separators.
func (c *cursor) parseArray() (Value, bool) {
	start := c.pos
	if !c.lit("[") {
		return Value{}, false
	}
	var elems []Value
	for {
		mark := c.pos
		c.skipWhitespace()
		v, ok := c.parseValue()
		if !ok {
			c.pos = mark
			break
		}
		elems = append(elems, v)
		mark = c.pos
		c.skipInlineWhitespace()
		if c.lit(",") || c.lit("\n") {
			continue
		}
		c.pos = mark
		break
	}
	c.skipWhitespace()
	c.lit(",")
	c.skipWhitespace()
	if !c.lit("]") {
		c.expected("']'")
		c.pos = start
		return Value{}, false
	}
	return Value{Kind: KindArray, Elems: elems}, true
}

// parseObject consumes either a braced object with zero or more fields or a
// braceless one with at least one field. Braceless objects are what let a
// whole document omit its outermost braces.
func (c *cursor) parseObject() (Value, bool) {
	start := c.pos
	if c.lit("{") {
		fields := c.parseFields()
		c.skipWhitespace()
		if !c.lit("}") {
			c.expected("'}'")
			c.pos = start
			return Value{}, false
		}
		return Value{Kind: KindObject, Fields: fields}, true
	}
	fields := c.parseFields()
	if len(fields) == 0 {
		c.pos = start
		return Value{}, false
	}
	return Value{Kind: KindObject, Fields: fields}, true
}

func (c *cursor) parseFields() []Field {
	var fields []Field
	for {
		mark := c.pos
		f, ok := c.parseField()
		if !ok {
			c.pos = mark
			break
		}
		fields = append(fields, f)
	}
	return fields
}

// parseField consumes one object entry: an include directive or a key/value
// pair.
func (c *cursor) parseField() (Field, bool) {
	c.skipWhitespace()
	if inc, ok := c.parseInclude(); ok {
		return IncludeField(inc), true
	}
	return c.parseKeyValue()
}

// parseKeyValue consumes a key, a separator and a value, then eats trailing
// whitespace and an optional comma. That trailing eater is what makes
// newline-separated fields work without explicit separators.
func (c *cursor) parseKeyValue() (Field, bool) {
	start := c.pos
	c.skipWhitespace()
	key, ok := c.parseKey()
	if !ok {
		c.pos = start
		return Field{}, false
	}
	c.skipWhitespace()
	if !c.parseSeparator() {
		c.pos = start
		return Field{}, false
	}
	c.skipWhitespace()
	v, ok := c.parseValue()
	if !ok {
		c.pos = start
		return Field{}, false
	}
	c.skipWhitespace()
	c.lit(",")
	return KeyValue(key, v), true
}

func (c *cursor) parseKey() (string, bool) {
	if s, ok := c.parseQuotedString(); ok {
		return s, true
	}
	if s, ok := c.parseUnquotedString(); ok {
		return s, true
	}
	c.expected("key")
	return "", false
}

// parseSeparator consumes ':' or '=' between a key and its value. An opening
// brace also separates but stays unconsumed, which is how "key { ... }"
// nests without a colon.
func (c *cursor) parseSeparator() bool {
	if c.lit(":") || c.lit("=") {
		return true
	}
	if strings.HasPrefix(c.rest(), "{") {
		return true
	}
	c.expected("':', '=' or '{'")
	return false
}
