// Package manifest keeps an optional record of what each sync wrote: the
// destination file, its size and its sha256.
//
// The manifest is additive. Reconciliation never reads it; file names remain
// the only identity. It exists so integrity checks can detect content that
// changed after download.
package manifest
