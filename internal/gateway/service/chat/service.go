// Package chat coordinates one conversational turn: context assembly,
// session persistence, the model call, and transcript archival.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"contextify/internal/assemble"
	"contextify/internal/content"
	"contextify/internal/gateway/repository/sessionstore"
	transcriptrepo "contextify/internal/gateway/repository/transcript"
	llmclient "contextify/internal/llm/client"
	"contextify/internal/workspace"
)

const systemPrompt = `You are a coding assistant embedded in an editor.
Use the workspace files included in the request as the primary source of
truth, and cite file paths when you reference them. When the context does
not cover the question, say so instead of guessing.`

// historyLimit caps how many prior messages are replayed into the model
// prompt. Older turns stay in the session store but are not resent.
const historyLimit = 20

type Service struct {
	workspace *workspace.Workspace
	assembler *assemble.Assembler
	client    llmclient.TextClient
	sessions  *sessionstore.Store
	archive   transcriptrepo.Store
	timeout   time.Duration
}

// New wires a chat service. archive may be nil, which disables
// transcript archival.
func New(
	ws *workspace.Workspace,
	asm *assemble.Assembler,
	client llmclient.TextClient,
	sessions *sessionstore.Store,
	archive transcriptrepo.Store,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Service{
		workspace: ws,
		assembler: asm,
		client:    client,
		sessions:  sessions,
		archive:   archive,
		timeout:   timeout,
	}
}

// Reply is the outcome of one completed turn.
type Reply struct {
	SessionID       string
	Text            string
	ReferencedFiles []string
}

// HandleSend runs one turn: it resolves the prompt's file references,
// persists the user message, calls the model with the assembled context,
// persists the reply, and archives the turn. Unresolvable references are
// logged and skipped, never fatal.
func (s *Service) HandleSend(ctx context.Context, sessionID, text string, attached []string) (Reply, error) {
	if s == nil || s.assembler == nil || s.client == nil || s.sessions == nil {
		return Reply{}, fmt.Errorf("chat service is not available")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, fmt.Errorf("text is required")
	}

	sess, err := s.sessions.EnsureSession(sessionID)
	if err != nil {
		return Reply{}, fmt.Errorf("ensure session: %w", err)
	}

	block := s.assembler.Assemble(ctx, text, attached)
	for _, d := range block.Dropped {
		log.Printf("chat: dropping reference %q: %v", d.Token, d.Err)
	}
	refs := block.ReferencedFiles()

	history, err := s.sessions.History(sess.ID, historyLimit)
	if err != nil {
		log.Printf("chat: load history for %s failed: %v", sess.ID, err)
		history = nil
	}

	userMsg, err := s.sessions.AppendMessage(sess.ID, sessionstore.Message{
		Role:            sessionstore.RoleUser,
		Content:         text,
		ReferencedFiles: refs,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("append user message: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	answer, err := s.client.GenerateText(genCtx, systemPrompt, buildUserPayload(history, block))
	if err != nil {
		return Reply{}, fmt.Errorf("generate: %w", err)
	}

	if _, err := s.sessions.AppendMessage(sess.ID, sessionstore.Message{
		Role:    sessionstore.RoleAssistant,
		Content: answer,
	}); err != nil {
		log.Printf("chat: append assistant message for %s failed: %v", sess.ID, err)
	}

	s.archiveTurn(sess.ID, userMsg.Seq, text, answer, refs)

	return Reply{SessionID: sess.ID, Text: answer, ReferencedFiles: refs}, nil
}

// EnsureSession returns the existing session's ID, minting a fresh
// session when id is blank or unknown.
func (s *Service) EnsureSession(id string) (string, error) {
	if s == nil || s.sessions == nil {
		return "", fmt.Errorf("session store is not available")
	}
	sess, err := s.sessions.EnsureSession(id)
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

// Suggest ranks workspace files matching the typed query for the
// editor's mention picker.
func (s *Service) Suggest(ctx context.Context, query string) []workspace.Candidate {
	if s == nil || s.workspace == nil {
		return nil
	}
	return s.workspace.Suggest(ctx, query)
}

// ReadFile resolves token against the workspace and returns the
// root-relative path together with the file's context rendering.
func (s *Service) ReadFile(ctx context.Context, token string) (string, string, error) {
	if s == nil || s.workspace == nil {
		return "", "", fmt.Errorf("workspace is not available")
	}
	abs, err := s.workspace.Resolve(ctx, token)
	if err != nil {
		return "", "", err
	}
	text, err := content.Read(abs)
	if err != nil {
		return "", "", err
	}
	return s.workspace.Rel(abs), text, nil
}

func buildUserPayload(history []sessionstore.Message, block *assemble.Block) string {
	rendered := block.Render()
	if len(history) == 0 {
		return rendered
	}
	var sb strings.Builder
	sb.WriteString("Conversation so far:\n\n")
	for _, m := range history {
		if m.Role == sessionstore.RoleAssistant {
			sb.WriteString("Assistant: ")
		} else {
			sb.WriteString("User: ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(rendered)
	return sb.String()
}

// archiveTurn is best effort: archival failures are logged and the turn
// still succeeds. A detached context keeps the upload alive even when
// the client disconnects right after the reply.
func (s *Service) archiveTurn(sessionID string, seq int, userText, answer string, refs []string) {
	if s.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.archive.Put(ctx, sessionID, seq, renderTurnMarkdown(seq, userText, answer, refs)); err != nil {
		log.Printf("chat: archive turn %d for %s failed: %v", seq, sessionID, err)
	}
}

func renderTurnMarkdown(seq int, userText, answer string, refs []string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Turn %d\n\n", seq)
	sb.WriteString("## User\n\n")
	sb.WriteString(userText)
	sb.WriteString("\n\n## Assistant\n\n")
	sb.WriteString(answer)
	sb.WriteString("\n")
	if len(refs) > 0 {
		sb.WriteString("\n## Referenced Files\n\n")
		for _, ref := range refs {
			sb.WriteString("- ")
			sb.WriteString(ref)
			sb.WriteString("\n")
		}
	}
	return []byte(sb.String())
}
