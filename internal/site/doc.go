// Package site discovers Markdown sources for one domain, runs them through
// the converter, wraps the fragments into complete pages, and publishes the
// result into the domain's destination root. It also generates the domain
// index page and maintains a build manifest for incremental runs.
//
// The converter itself stays pure: all file, path, and template concerns live
// here.
package site
