// Package connectors groups the document source implementations. Each
// connector knows how to enumerate and fetch documents from one source
// type: the local filesystem vault or an Outline wiki.
package connectors
