// Package assets provides the site stylesheet and HTML page templates.
//
// Assets live in a tree laid out as
//
//	styles/site.css
//	templates/layout.html   defines "layout", calls {{template "content" .}}
//	templates/home.html     defines "content"
//	templates/blog.html
//	templates/post.html
//
// The built-in tree is embedded in the binary. NewAssetResolver layers a
// directory from the assets.basePath setting over it: files found there win,
// missing ones come from the embedded tree. The directory is read through an
// os.Root and asset names are restricted to [A-Za-z0-9_-], so requests cannot
// leave it.
package assets
