package ui

import (
	"html/template"
	"io/fs"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderAboutContent converts the embedded about page Markdown into HTML once
// at startup. The source is authored in-repo, so the output is trusted.
func renderAboutContent(files fs.FS) (template.HTML, error) {
	source, err := fs.ReadFile(files, "content/about.md")
	if err != nil {
		return "", err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(source)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	})
	return template.HTML(markdown.Render(doc, renderer)), nil
}
