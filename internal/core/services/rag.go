package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driving"
	"github.com/4ug-aug/Metabrain/internal/logger"
)

// Ensure RagEngine implements the interface.
var _ driving.RagService = (*RagEngine)(nil)

const systemPrompt = `You are Metabrain, a helpful AI assistant that answers questions based on the user's personal knowledge base.

Use MAINLY the provided context to answer questions. If the context doesn't contain relevant information, say so clearly but attempt to answer the user's question.

When citing information, mention which note it comes from if possible.

Be concise but thorough in your answers.`

const queryExpansionPrompt = `Given the following conversation and the latest user query, generate 2-3 alternative search queries that would help find relevant information in a knowledge base. The queries should:
1. Capture the core intent of the question
2. Include relevant synonyms or related terms
3. Consider context from the conversation

Return ONLY the queries, one per line, without numbering or explanations.

Conversation:
%s

Latest Query: %s

Alternative search queries:`

const (
	// maxContextChunks bounds how many chunks feed the prompt.
	maxContextChunks = 5

	// minSimilarityThreshold drops weakly related chunks from the context.
	minSimilarityThreshold = 0.25

	// maxChatHistory bounds how many past turns inform expansion and the
	// prompt.
	maxChatHistory = 10

	// maxQueries caps expansion output, original question included.
	maxQueries = 4
)

// RagEngine answers questions by retrieving relevant chunks from the
// knowledge base and feeding them to the LLM, streaming the answer
// through the notifier.
type RagEngine struct {
	chatStore driven.ChatStore
	retriever *Retriever
	embedder  driven.EmbeddingService
	llm       driven.LLMService
	notifier  driven.Notifier
}

// NewRagEngine creates a new RAG engine.
// The notifier is optional; nil disables stream events.
func NewRagEngine(
	chatStore driven.ChatStore,
	retriever *Retriever,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	notifier driven.Notifier,
) *RagEngine {
	if notifier == nil {
		notifier = driven.NopNotifier{}
	}
	return &RagEngine{
		chatStore: chatStore,
		retriever: retriever,
		embedder:  embedder,
		llm:       llm,
		notifier:  notifier,
	}
}

// Answer runs the full pipeline for one question. The user turn is
// persisted before any retrieval work; the assistant turn (or an error
// placeholder) after. StreamDone fires exactly once per call.
func (e *RagEngine) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	// History before this turn informs expansion and the prompt.
	history, err := e.chatStore.History(ctx)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}

	if _, err := e.chatStore.Append(ctx, domain.RoleUser, question); err != nil {
		return "", fmt.Errorf("save user message: %w", err)
	}

	answer, err := e.answer(ctx, question, history)
	if err != nil {
		// Persist the failure as the assistant turn so the conversation
		// stays consistent; the save error itself is best-effort.
		_, _ = e.chatStore.Append(ctx, domain.RoleAssistant, fmt.Sprintf("Error: %v", err))
		e.notifier.StreamDone()
		return "", err
	}

	if _, err := e.chatStore.Append(ctx, domain.RoleAssistant, answer); err != nil {
		return "", fmt.Errorf("save assistant message: %w", err)
	}

	return answer, nil
}

// History returns the persisted conversation in order.
func (e *RagEngine) History(ctx context.Context) ([]domain.ChatMessage, error) {
	return e.chatStore.History(ctx)
}

// ClearHistory removes the entire conversation log.
func (e *RagEngine) ClearHistory(ctx context.Context) error {
	return e.chatStore.Clear(ctx)
}

// answer retrieves context and streams the generated response.
func (e *RagEngine) answer(ctx context.Context, question string, history []domain.ChatMessage) (string, error) {
	logger.Section("Answer Pipeline")
	logger.Debug("Question: %q", question)

	queries := e.expandQuery(ctx, question, history)
	logger.Debug("Search queries: %d", len(queries))

	results, err := e.retrieve(ctx, queries)
	if err != nil {
		return "", err
	}
	logger.Info("Found %d relevant chunks", len(results))

	kbContext := buildContext(results)
	prompt := buildPrompt(question, kbContext, history)

	answer, err := e.llm.GenerateStream(ctx, prompt, e.notifier.StreamChunk)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	e.notifier.StreamDone()
	return answer, nil
}

// expandQuery asks the LLM for alternative search queries. The original
// question always comes first; expansion failure degrades to it alone.
func (e *RagEngine) expandQuery(ctx context.Context, question string, history []domain.ChatMessage) []string {
	queries := []string{question}

	recent := recentTurns(history, maxChatHistory)
	conversation := "No previous conversation."
	if len(recent) > 0 {
		lines := make([]string, len(recent))
		for i, m := range recent {
			lines[i] = fmt.Sprintf("%s: %s", m.Role, m.Content)
		}
		conversation = strings.Join(lines, "\n")
	}

	prompt := fmt.Sprintf(queryExpansionPrompt, conversation, question)

	response, err := e.llm.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("Query expansion failed, using original query only: %v", err)
		return queries
	}

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) <= 3 || len(trimmed) >= 500 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		// Remove any numbering like "1." or "1)".
		cleaned := strings.TrimLeft(trimmed, "0123456789.) ")
		if cleaned != "" {
			queries = append(queries, cleaned)
		}
	}

	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	return queries
}

// retrieve searches with every query and fuses the result sets:
// first occurrence wins on duplicate chunk ids, then the union is
// re-ranked by similarity, capped, and thresholded.
func (e *RagEngine) retrieve(ctx context.Context, queries []string) ([]domain.RetrievalResult, error) {
	var fused []domain.RetrievalResult
	seen := make(map[string]bool)

	for _, query := range queries {
		embedding, err := e.embedder.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("embed query: %w", err)
		}

		results, err := e.retriever.Search(ctx, embedding, maxContextChunks)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}

		for _, r := range results {
			if seen[r.Chunk.ID] {
				continue
			}
			seen[r.Chunk.ID] = true
			fused = append(fused, r)
		}
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Similarity > fused[j].Similarity
	})
	if len(fused) > maxContextChunks {
		fused = fused[:maxContextChunks]
	}

	relevant := fused[:0]
	for _, r := range fused {
		if r.Similarity >= minSimilarityThreshold {
			relevant = append(relevant, r)
		}
	}
	return relevant, nil
}

// buildContext formats retrieved chunks as numbered sources.
func buildContext(results []domain.RetrievalResult) string {
	if len(results) == 0 {
		return "No relevant context found in your knowledge base."
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("[Source %d: %s (relevance: %.0f%%)]\n%s",
			i+1, r.Chunk.DocumentID, r.Similarity*100, r.Chunk.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// buildPrompt assembles the final generation prompt from the system
// preamble, retrieved context, recent conversation and the question.
func buildPrompt(question, kbContext string, history []domain.ChatMessage) string {
	recent := recentTurns(history, maxChatHistory)

	chatContext := ""
	if len(recent) > 0 {
		lines := make([]string, len(recent))
		for i, m := range recent {
			label := "Assistant"
			if m.Role == domain.RoleUser {
				label = "User"
			}
			lines[i] = fmt.Sprintf("%s: %s", label, m.Content)
		}
		chatContext = "\n\n## Previous Conversation:\n\n" + strings.Join(lines, "\n\n")
	}

	return fmt.Sprintf("%s\n\n## Context from your knowledge base:\n\n%s%s\n\n## Current User Question:\n\n%s\n\n## Your Answer:",
		systemPrompt, kbContext, chatContext, question)
}

// recentTurns returns the last n messages in conversation order.
func recentTurns(history []domain.ChatMessage, n int) []domain.ChatMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
