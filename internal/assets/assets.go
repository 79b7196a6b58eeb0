package assets

import (
	"fmt"
	"html/template"
)

// DefaultStyleName is the name of the built-in site stylesheet.
const DefaultStyleName = "site"

// LayoutTemplate wraps every page template. Pages define a "content" block.
const LayoutTemplate = "layout"

// Page template names.
const (
	PageHome = "home"
	PageBlog = "blog"
	PagePost = "post"
)

// PageTemplates lists the page templates a site needs.
var PageTemplates = []string{PageHome, PageBlog, PagePost}

// ParsePage parses the layout and one page template from loader into a
// template whose entry point is LayoutTemplate.
func ParsePage(loader AssetLoader, page string, funcs template.FuncMap) (*template.Template, error) {
	layout, err := loader.LoadTemplate(LayoutTemplate)
	if err != nil {
		return nil, err
	}
	body, err := loader.LoadTemplate(page)
	if err != nil {
		return nil, err
	}

	tmpl := template.New(LayoutTemplate).Funcs(funcs)
	if _, err := tmpl.Parse(layout); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, LayoutTemplate, err)
	}
	if _, err := tmpl.Parse(body); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, page, err)
	}
	return tmpl, nil
}

// ParsePages parses every entry of PageTemplates.
func ParsePages(loader AssetLoader, funcs template.FuncMap) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(PageTemplates))
	for _, name := range PageTemplates {
		tmpl, err := ParsePage(loader, name, funcs)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return pages, nil
}
