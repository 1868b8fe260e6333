package markdown

import "strings"

// block is a header line plus its body, as a half-open line range.
type block struct {
	title      string
	start, end int
}

func blocks(tokens []Token, depth int) []block {
	var out []block
	cur := -1
	for i, tok := range tokens {
		if !tok.IsHeader() || !closes(tok, depth) {
			continue
		}
		if cur >= 0 {
			out[cur].end = i
			cur = -1
		}
		if tok.Depth == depth {
			out = append(out, block{title: tok.Title, start: i, end: len(tokens)})
			cur = len(out) - 1
		}
	}
	return out
}

// Splice merges fragment into doc block by block. Every section of the given
// depth in fragment replaces the first section of doc whose key matches, or
// is appended when none does. Fragment text outside any such section is
// appended as well. A nil key compares titles as written.
func Splice(doc, fragment string, depth int, key func(string) string) string {
	if key == nil {
		key = func(s string) string { return s }
	}
	fragTokens := Tokenize(fragment)
	fragBlocks := blocks(fragTokens, depth)
	if len(fragBlocks) == 0 {
		return AppendFragment(doc, fragment)
	}

	lines := docLines(doc)
	var appendix []string
	if pre := fragBlocks[0].start; pre > 0 && strings.TrimSpace(joinLines(fragTokens[:pre])) != "" {
		appendix = append(appendix, lineSlice(fragTokens[:pre])...)
	}

	for _, fb := range fragBlocks {
		repl := lineSlice(trimTrailingBlank(fragTokens[fb.start:fb.end]))
		want := key(fb.title)

		docTokens := make([]Token, len(lines))
		for i, l := range lines {
			docTokens[i] = classify(l)
		}
		matched := false
		for _, db := range blocks(docTokens, depth) {
			if key(db.title) != want {
				continue
			}
			tail := lines[db.end:]
			if len(tail) > 0 {
				repl = append(repl, "")
			}
			lines = append(append(append([]string{}, lines[:db.start]...), repl...), tail...)
			matched = true
			break
		}
		if !matched {
			if len(appendix) > 0 {
				appendix = append(appendix, "")
			}
			appendix = append(appendix, repl...)
		}
	}

	out := strings.Join(lines, "\n")
	if strings.HasSuffix(doc, "\n") {
		out += "\n"
	}
	if len(appendix) > 0 {
		out = AppendFragment(out, strings.Join(appendix, "\n")+"\n")
	}
	return out
}

// AppendFragment adds fragment to the end of doc on a new line.
func AppendFragment(doc, fragment string) string {
	return doc + "\n" + fragment
}

func docLines(doc string) []string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	if doc == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(doc, "\n"), "\n")
}

func lineSlice(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Line
	}
	return out
}

func joinLines(tokens []Token) string {
	return strings.Join(lineSlice(tokens), "\n")
}

func trimTrailingBlank(tokens []Token) []Token {
	end := len(tokens)
	for end > 0 && strings.TrimSpace(tokens[end-1].Line) == "" {
		end--
	}
	return tokens[:end]
}

// EditSection rewrites the body of the first section of the given depth
// titled title and leaves every other line of doc untouched. edit receives
// the body without surrounding blank lines. When doc has no such section a
// new one is appended.
func EditSection(doc, title string, depth int, edit func(body string) string) string {
	lines := docLines(doc)
	tokens := make([]Token, len(lines))
	for i, l := range lines {
		tokens[i] = classify(l)
	}

	for _, b := range blocks(tokens, depth) {
		if b.title != title {
			continue
		}
		end := b.end
		for end > b.start+1 && strings.TrimSpace(lines[end-1]) == "" {
			end--
		}
		start := b.start + 1
		for start < end && strings.TrimSpace(lines[start]) == "" {
			start++
		}

		body := docLines(edit(strings.Join(lines[start:end], "\n")))
		out := make([]string, 0, len(lines)+len(body))
		out = append(out, lines[:start]...)
		out = append(out, body...)
		out = append(out, lines[end:]...)

		text := strings.Join(out, "\n")
		if strings.HasSuffix(doc, "\n") {
			text += "\n"
		}
		return text
	}

	section := strings.Repeat("#", depth) + " " + title + "\n"
	if body := strings.TrimRight(edit(""), "\n"); body != "" {
		section += body + "\n"
	}
	switch {
	case doc == "":
		return section
	case strings.HasSuffix(doc, "\n\n"):
		return doc + section
	case strings.HasSuffix(doc, "\n"):
		return doc + "\n" + section
	default:
		return doc + "\n\n" + section
	}
}

// AppendListItem adds "- item" to the end of a section body, replacing the
// body when it is only the placeholder.
func AppendListItem(doc, title string, depth int, item, placeholder string) string {
	line := "- " + item
	return EditSection(doc, title, depth, func(body string) string {
		if body == "" || body == placeholder {
			return line
		}
		return body + "\n" + line
	})
}

// LinkImage points the first image link of the named section at path. When
// the section has no link one is put at the top of its body.
func LinkImage(doc, title string, depth int, alt, path string) string {
	link := "![" + oneLine(alt) + "](" + path + ")"
	return EditSection(doc, title, depth, func(body string) string {
		lines := docLines(body)
		for i, l := range lines {
			if _, ok := parseImageLink(l); ok {
				lines[i] = link
				return strings.Join(lines, "\n")
			}
		}
		return strings.Join(append([]string{link}, lines...), "\n")
	})
}
