// Package polish implements the editor's text improvement capability against
// a JSON-over-HTTP service.
//
// The wire format is deliberately small: the client POSTs
//
//	{"model": "...", "instruction": "...", "text": "..."}
//
// and expects {"text": "..."} back. Server errors and transport failures are
// retried with exponential backoff; client errors are not.
package polish
