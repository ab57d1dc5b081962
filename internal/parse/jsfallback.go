package parse

import (
	"regexp"
	"strings"
)

// jsPattern is the always-available pattern tier. It trades precision for
// robustness: line-oriented matching that never fails, at the cost of
// possible false negatives on deeply nested or unusually formatted code.
type jsPattern struct{}

var (
	jsClassRe     = regexp.MustCompile(`\bclass\s+(\w+)`)
	jsFuncDeclRe  = regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`)
	jsAsyncFuncRe = regexp.MustCompile(`\basync\s+function\s+(\w+)\s*\(`)
	// Declaration-bound values: group 2 present means the value is a
	// function or arrow literal.
	jsVarDeclRe   = regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)\s*=\s*(async\b|function\b|\()?`)
	jsWindowRe    = regexp.MustCompile(`\bwindow\.(\w+)\s*=`)
	jsExportsRe   = regexp.MustCompile(`(?s)\bmodule\.exports\s*=\s*\{(.*?)\}`)
	jsExportKeyRe = regexp.MustCompile(`(\w+)\s*:`)

	jsMethodRes = []*regexp.Regexp{
		regexp.MustCompile(`(\w+)\s*\([^)]*\)\s*\{`),
		regexp.MustCompile(`(\w+)\s*=\s*\([^)]*\)\s*=>`),
		regexp.MustCompile(`(\w+)\s*=\s*async\s*\([^)]*\)\s*=>`),
	}

	jsKeywords = map[string]bool{
		"if": true, "for": true, "while": true, "switch": true,
		"catch": true, "return": true,
	}
)

func (jsPattern) extract(path string, content []byte) (*Symbols, error) {
	text := string(content)
	symbols := NewSymbols()

	// Classes, then methods scanned only within each class's textual span
	// (delimited by the next class declaration or end of file).
	classNames := make([]string, 0, 4)
	for _, m := range jsClassRe.FindAllStringSubmatch(text, -1) {
		symbols.Classes[m[1]] = true
		classNames = append(classNames, m[1])
	}
	for _, className := range classNames {
		openRe := regexp.MustCompile(`\bclass\s+` + regexp.QuoteMeta(className) + `\s*[^{]*\{`)
		for _, loc := range openRe.FindAllStringIndex(text, -1) {
			chunk := text[loc[1]:]
			if next := strings.Index(chunk, "class "); next != -1 {
				chunk = chunk[:next]
			}
			for _, re := range jsMethodRes {
				for _, m := range re.FindAllStringSubmatch(chunk, -1) {
					if !jsKeywords[m[1]] {
						symbols.Functions[m[1]] = true
					}
				}
			}
		}
	}

	// Free functions, declared or bound via const/let/var.
	for _, m := range jsFuncDeclRe.FindAllStringSubmatch(text, -1) {
		symbols.Functions[m[1]] = true
	}
	for _, m := range jsAsyncFuncRe.FindAllStringSubmatch(text, -1) {
		symbols.Functions[m[1]] = true
	}
	for _, m := range jsVarDeclRe.FindAllStringSubmatch(text, -1) {
		if m[2] != "" {
			symbols.Functions[m[1]] = true
		} else {
			symbols.Globals[m[1]] = true
		}
	}

	// Bare exports: window attachments and module.exports mapping keys.
	for _, m := range jsWindowRe.FindAllStringSubmatch(text, -1) {
		symbols.Globals[m[1]] = true
	}
	if m := jsExportsRe.FindStringSubmatch(text); m != nil {
		for _, key := range jsExportKeyRe.FindAllStringSubmatch(m[1], -1) {
			symbols.Functions[key[1]] = true
		}
	}

	return symbols, nil
}
