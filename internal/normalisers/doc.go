// Package normalisers contains format-specific document normalisers that
// turn raw source bytes into plain text plus change-detection metadata.
//
// The knowledge base is markdown-first, so the markdown normaliser is the
// only implementation. Chunking is a separate concern handled by the
// postprocessors packages.
package normalisers
