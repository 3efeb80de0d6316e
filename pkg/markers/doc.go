// Package markers rewrites marker strings found in editor configuration into
// concrete URLs. Two markers are understood:
//
//	asset[css/editor.css]   resolved through an AssetResolver, after the
//	                        configured base URL is prepended to the path
//	path[spellchecker]      resolved through a RouteResolver by route name
//
// Strings that do not match a marker pass through unchanged.
package markers
