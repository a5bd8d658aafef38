package service

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DescriptionRenderer turns product descriptions written in markdown into safe HTML
type DescriptionRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewDescriptionRenderer creates a renderer with GFM extensions and the UGC sanitising policy
func NewDescriptionRenderer() *DescriptionRenderer {
	return &DescriptionRenderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts the description. Plain text without markdown becomes a paragraph.
func (r *DescriptionRenderer) Render(description string) template.HTML {
	if description == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(description), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(description))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}
