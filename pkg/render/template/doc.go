// Package template defines the template renderer contract used to produce the
// editor initialisation markup. The gotemplate subpackage provides the
// default pongo2 backed implementation; hosts that already own a template
// engine can satisfy TemplateRenderer themselves.
package template
