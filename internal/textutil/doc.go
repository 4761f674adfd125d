// Package textutil sanitizes untrusted text for filesystem use.
//
// Uploaded media arrives with arbitrary client-supplied filenames; these
// helpers strip the characters that would break archive paths before the
// daemon persists anything under the data directory.
package textutil
