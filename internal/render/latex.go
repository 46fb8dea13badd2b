package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

// DefaultStyle is the highlighting palette used for code blocks.
const DefaultStyle = "friendly"

const latexPreamble = `% Auto-generated LaTeX file with property-based tests
\documentclass{article}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage{geometry}
\usepackage{fancyvrb}
\usepackage{xcolor}
\usepackage{hyperref}
\geometry{margin=1in}
\def\PYZbs{\char` + "`" + `\\}
\def\PYZob{\char` + "`" + `\{}
\def\PYZcb{\char` + "`" + `\}}
\begin{document}
`

// LaTeX writes a standalone document with one highlighted, line-numbered
// block per test and a permalink above each block.
type LaTeX struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewLaTeX builds a renderer for Python sources in the named chroma style.
func NewLaTeX(styleName string) *LaTeX {
	lexer := lexers.Get("python")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	return &LaTeX{
		lexer: chroma.Coalesce(lexer),
		style: style,
	}
}

// Render writes the document for groups at locator's revision to w.
func (l *LaTeX) Render(w io.Writer, groups Grouped, locator m.RevisionLocator) error {
	var b strings.Builder

	b.WriteString(latexPreamble)
	fmt.Fprintf(&b, "\\section*{\\texttt{\\detokenize{Property-based tests from %s}}}\n", locator.Name)

	for _, path := range groups.Files() {
		fmt.Fprintf(&b, "\\subsection*{\\texttt{\\detokenize{%s}}}\n", path)

		for _, scope := range groups.Scopes(path) {
			fmt.Fprintf(&b, "\\subsubsection*{\\texttt{\\detokenize{%s}}}\n", scope)

			for _, test := range groups.Tests(path, scope) {
				permalink := locator.Permalink(path, test.StartLine)
				fmt.Fprintf(&b, "\\noindent\\href{%s}{\\textbf{%s}}\n", escapeURL(permalink), escapeText(test.Name))

				if err := l.writeBlock(&b, test); err != nil {
					return fmt.Errorf("highlight %s:%d: %w", path, test.StartLine, err)
				}

				b.WriteString("\\vspace{1em}\n")
			}
		}
	}

	b.WriteString("\\end{document}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

func (l *LaTeX) writeBlock(b *strings.Builder, test m.ExtractedTest) error {
	// Header and body without the separator line keep numbers aligned with the source.
	iterator, err := l.lexer.Tokenise(nil, strings.TrimRight(test.Header+test.Body, " \t\r\n")+"\n")
	if err != nil {
		return err
	}

	firstLine := test.StartLine
	if firstLine < 1 {
		firstLine = 1
	}

	fmt.Fprintf(b, "\\begin{Verbatim}[commandchars=\\\\\\{\\},numbers=left,firstnumber=%d]\n", firstLine)

	for _, line := range chroma.SplitTokensIntoLines(iterator.Tokens()) {
		for _, token := range line {
			b.WriteString(l.formatToken(token))
		}
	}

	b.WriteString("\\end{Verbatim}\n")

	return nil
}

// formatToken wraps one token in color and weight commands. Newlines stay
// outside the commands so every Verbatim line is balanced.
func (l *LaTeX) formatToken(token chroma.Token) string {
	value := strings.TrimSuffix(token.Value, "\n")
	suffix := token.Value[len(value):]

	if value == "" {
		return suffix
	}

	text := escapeVerbatim(value)
	entry := l.style.Get(token.Type)

	if entry.Colour.IsSet() {
		text = fmt.Sprintf("\\textcolor[rgb]{%.2f,%.2f,%.2f}{%s}",
			float64(entry.Colour.Red())/255,
			float64(entry.Colour.Green())/255,
			float64(entry.Colour.Blue())/255,
			text)
	}

	if entry.Bold == chroma.Yes {
		text = "\\textbf{" + text + "}"
	}

	if entry.Italic == chroma.Yes {
		text = "\\textit{" + text + "}"
	}

	return text + suffix
}

var verbatimReplacer = strings.NewReplacer(
	`\`, `\PYZbs{}`,
	`{`, `\PYZob{}`,
	`}`, `\PYZcb{}`,
)

func escapeVerbatim(s string) string {
	return verbatimReplacer.Replace(s)
}

var textReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`_`, `\_`,
	`#`, `\#`,
	`%`, `\%`,
	`&`, `\&`,
	`$`, `\$`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeText(s string) string {
	return textReplacer.Replace(s)
}

var urlReplacer = strings.NewReplacer(
	`\`, `\\`,
	`#`, `\#`,
	`%`, `\%`,
)

func escapeURL(s string) string {
	return urlReplacer.Replace(s)
}
