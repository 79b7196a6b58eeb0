// Package content loads blog posts and home page cards from Markdown files
// with YAML front matter.
//
// A content tree looks like:
//
//	content/
//	  posts/       one post per file, slug = file name without .md
//	  projects/    one ProjectCard per file (front matter only)
//	  experience/  one ExperienceCard per file (front matter only)
//
// Directories are read concurrently. Missing card directories yield empty
// lists; a missing posts directory yields no posts.
package content
