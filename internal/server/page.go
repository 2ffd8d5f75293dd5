package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/grovetools/praise/pkg/presenter"
	"github.com/grovetools/praise/pkg/workers"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

type pageImage struct {
	Index   int
	Name    string
	URL     template.URL
	Current bool
}

type pageData struct {
	Title        string
	View         presenter.View
	Images       []pageImage
	CurrentImage *pageImage
}

func imageURL(index int, w workers.Worker, inline bool) string {
	switch {
	case w.Placeholder:
		return workers.PlaceholderURL
	case inline:
		return workers.ImageURL(w)
	}
	return fmt.Sprintf("/workers/%d.png", index)
}

func newPageData(title string, v presenter.View, inline bool) pageData {
	data := pageData{Title: title, View: v}
	for i, w := range v.Workers {
		img := pageImage{Index: i, Name: w.Name, URL: template.URL(imageURL(i, w, inline)), Current: i == v.Current}
		data.Images = append(data.Images, img)
		if img.Current {
			current := img
			data.CurrentImage = &current
		}
	}
	return data
}

func renderPage(w io.Writer, title string, v presenter.View, inline bool) error {
	return pageTemplate.Execute(w, newPageData(title, v, inline))
}
