// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document and chunk persistence
//   - ChatStore: Conversation log persistence
//   - SettingsStore: Runtime settings persistence
//   - VaultScanner: Local markdown vault enumeration
//   - Normaliser: Markdown to plain-text conversion
//   - Chunker: Text chunking for embedding
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Text generation for answering
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RemoteSource: Outline wiki import. Without it, only the local vault is indexed.
//   - Notifier: Progress and stream events. Without it, operations run silently.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
