package ui

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed help.md
var helpMarkdown []byte

// handleHelp renders the embedded usage notes as HTML.
func (s *Server) handleHelp(c *gin.Context) {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(helpMarkdown)

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.Render(doc, renderer)

	page := append([]byte(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Genoscope</title>`+
		`<style>body{font-family:sans-serif;max-width:760px;margin:40px auto;line-height:1.5}</style></head><body>`), body...)
	page = append(page, []byte(`</body></html>`)...)

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
