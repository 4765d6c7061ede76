// Package docmd turns a documentation website into a locally navigable
// tree of markdown files. It crawls every in-scope page reachable from a
// root URL, converts the HTML to markdown, repairs code fences mangled by
// conversion, rewrites internal links to the generated local files, and
// lays the result out as a directory tree with navigation indexes.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. goquery/,
// htmltomarkdown/, http/).
package docmd
