// Package script serialises editor configuration trees into JavaScript object
// literals that can be embedded in an inline <script> block. Values are
// encoded as JSON except for Callback values, which are written verbatim so
// callback settings reference functions instead of strings.
package script
