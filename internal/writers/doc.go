// Package writers turns projections and relations into serialized outputs.
//
// Every writer runs in its own goroutine behind a channel. Rendering lives in
// internal/output; JSONL goes through pkg/api (v1) for a stable wire format.
package writers
