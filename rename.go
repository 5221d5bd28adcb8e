package veil

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// renameCodec implements identifier scrambling: lexical discovery of
// identifier-like tokens, bijective short-name assignment, whole-word
// rewrite, and minification. The rename table is the decode key.
type renameCodec struct{}

// NewRenameCodec returns the identifier rename codec.
func NewRenameCodec() Codec {
	return &renameCodec{}
}

func (c *renameCodec) Method() Method {
	return MethodRename
}

var (
	identRe        = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	stringLitRe    = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// reservedWords are never renamed: language keywords, literals, and common
// global names. Lexical discovery has no scope information, so globals are
// excluded by list.
var reservedWords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true,
	"return": true, "if": true, "else": true, "for": true, "while": true,
	"do": true, "break": true, "continue": true, "switch": true,
	"case": true, "default": true, "new": true, "delete": true,
	"typeof": true, "instanceof": true, "in": true, "of": true,
	"this": true, "class": true, "extends": true, "super": true,
	"import": true, "export": true, "try": true, "catch": true,
	"finally": true, "throw": true, "void": true, "yield": true,
	"async": true, "await": true, "static": true, "get": true, "set": true,
	"true": true, "false": true, "null": true, "undefined": true,
	"NaN": true, "Infinity": true,
	"console": true, "window": true, "document": true, "Math": true,
	"JSON": true, "Object": true, "Array": true, "String": true,
	"Number": true, "Boolean": true, "Date": true, "RegExp": true,
	"Error": true, "Promise": true, "Symbol": true, "Map": true,
	"Set": true, "parseInt": true, "parseFloat": true, "isNaN": true,
	"eval": true, "atob": true, "btoa": true, "arguments": true,
	"require": true, "module": true, "exports": true,
}

// Encode discovers identifiers, assigns generated names, rewrites the full
// source, and minifies. The secret is ignored; the returned table is the
// decode key.
func (c *renameCodec) Encode(ctx context.Context, source, secret string) (*Result, error) {
	start := time.Now()
	emitEncodeStart(ctx, MethodRename, len(source))

	var retErr error
	var renamed int
	var artifact string
	defer func() {
		emitEncodeComplete(ctx, MethodRename, len(artifact), renamed, "", time.Since(start), retErr)
	}()

	if source == "" {
		retErr = newTransformError(ErrInvalidInput, MethodRename, "empty source text")
		return nil, retErr
	}

	idents := discoverIdentifiers(source)
	renamed = len(idents)

	// Longest first so a shorter identifier's pattern never matches inside
	// a longer, not-yet-replaced one sharing a prefix or suffix.
	sort.SliceStable(idents, func(i, j int) bool {
		return len(idents[i]) > len(idents[j])
	})

	table := make(RenameTable, len(idents))
	rewritten := source
	for i, name := range idents {
		replacement := generatedName(i)
		table[name] = replacement
		rewritten = replaceWholeWord(rewritten, name, replacement)
	}

	artifact = minify(rewritten)

	return &Result{
		Text:  artifact,
		Log:   fmt.Sprintf("rename: renamed %d identifiers, minified %d to %d bytes", renamed, len(source), len(artifact)),
		Table: table,
	}, nil
}

// Decode reverses the rename using the supplied table, serialized as JSON.
// Minification is not undone.
func (c *renameCodec) Decode(ctx context.Context, artifact, key string) (*Result, error) {
	start := time.Now()
	emitDecodeStart(ctx, MethodRename, len(artifact))

	var retErr error
	var restored int
	var text string
	defer func() {
		emitDecodeComplete(ctx, MethodRename, len(text), restored, time.Since(start), retErr)
	}()

	if key == "" {
		retErr = newTransformError(ErrMissingDecodeKey, MethodRename, "rename table required")
		return nil, retErr
	}

	var table RenameTable
	if err := json.Unmarshal([]byte(key), &table); err != nil {
		retErr = newArtifactError(ErrMalformedArtifact, MethodRename, "rename table")
		return nil, retErr
	}
	if len(table) == 0 {
		retErr = newTransformError(ErrMissingDecodeKey, MethodRename, "rename table is empty")
		return nil, retErr
	}

	// Reverse substitution, longest replacement first. Ties break on the
	// replacement name so map order never leaks into the output.
	type pair struct{ original, replacement string }
	pairs := make([]pair, 0, len(table))
	for original, replacement := range table {
		pairs = append(pairs, pair{original, replacement})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if len(pairs[i].replacement) != len(pairs[j].replacement) {
			return len(pairs[i].replacement) > len(pairs[j].replacement)
		}
		return pairs[i].replacement < pairs[j].replacement
	})

	text = artifact
	for _, p := range pairs {
		text = replaceWholeWord(text, p.replacement, p.original)
	}
	restored = len(pairs)

	return &Result{
		Text: text,
		Log:  fmt.Sprintf("rename: restored %d identifiers", restored),
	}, nil
}

// discoverIdentifiers collects the distinct non-reserved identifiers from a
// comment-and-string-stripped copy of the source, in order of first
// occurrence. The stripped copy is used only for discovery; the rewrite
// operates on the full source.
func discoverIdentifiers(source string) []string {
	stripped := blockCommentRe.ReplaceAllString(source, " ")
	stripped = lineCommentRe.ReplaceAllString(stripped, " ")
	stripped = stringLitRe.ReplaceAllString(stripped, " ")

	seen := make(map[string]bool)
	var idents []string
	for _, m := range identRe.FindAllString(stripped, -1) {
		if reservedWords[m] || seen[m] {
			continue
		}
		seen[m] = true
		idents = append(idents, m)
	}
	return idents
}

// nameAlphabet is the generated-name character set. The recurrence indexes
// it modulo 52, so the trailing underscore is reachable only by prepends.
const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"

// generatedName returns the nth name of the bijective base-52 sequence:
// a, b, ..., z, A, ..., Z, aa, ab, ...
// The counter is strictly increasing, so collisions between generated
// names cannot occur.
func generatedName(n int) string {
	name := ""
	for n >= 0 {
		name = string(nameAlphabet[n%52]) + name
		n = n/52 - 1
	}
	return name
}

// replaceWholeWord replaces every whole-word occurrence of old with new in
// text. Word boundaries are ASCII; a $ in an identifier does not count as
// a word character, matching the lexical contract this codec reproduces.
func replaceWholeWord(text, old, replacement string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(old) + `\b`)
	return re.ReplaceAllLiteralString(text, replacement)
}

// minify strips comments and collapses whitespace runs to a single space.
func minify(source string) string {
	out := blockCommentRe.ReplaceAllString(source, " ")
	out = lineCommentRe.ReplaceAllString(out, " ")
	out = whitespaceRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
