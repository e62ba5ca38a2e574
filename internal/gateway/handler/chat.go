package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"contextify/internal/gateway/service/chat"
	"contextify/internal/workspace"
)

// ChatHandler serves the chat websocket.
type ChatHandler struct {
	svc *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

func (h *ChatHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan wsOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	sessionID, err := h.svc.EnsureSession(strings.TrimSpace(r.URL.Query().Get("session")))
	if err != nil {
		pushChatWS(writeCh, wsOutbound{
			Type: "error",
			Code: "internal",
			Text: err.Error(),
		})
		cancel()
		<-writerDone
		return
	}
	pushChatWS(writeCh, wsOutbound{
		Type:      "session",
		SessionID: sessionID,
	})

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.TrimSpace(in.Type) {
		case "":
			pushChatWS(writeCh, wsOutbound{
				Type: "error",
				Code: "invalid_argument",
				Text: "type is required",
			})
		case "ping":
			pushChatWS(writeCh, wsOutbound{Type: "pong"})
		case "sendMessage":
			// The model call can take tens of seconds; run it off the
			// read loop so pings and pickers stay responsive.
			go h.handleSend(ctx, writeCh, sessionID, in)
		case "getWorkspaceFiles":
			h.handleSuggest(ctx, writeCh, in)
		case "getFileContent":
			h.handleFileContent(ctx, writeCh, in)
		default:
			pushChatWS(writeCh, wsOutbound{
				Type: "error",
				Code: "invalid_argument",
				Text: "unsupported type: " + strings.TrimSpace(in.Type),
			})
		}
	}
}

func (h *ChatHandler) handleSend(ctx context.Context, writeCh chan wsOutbound, sessionID string, in wsInbound) {
	reply, err := h.svc.HandleSend(ctx, sessionID, in.Text, in.AttachedFiles)
	if err != nil {
		code := "internal"
		if strings.Contains(err.Error(), "text is required") {
			code = "invalid_argument"
		}
		pushChatWS(writeCh, wsOutbound{
			Type: "error",
			Code: code,
			Text: err.Error(),
		})
		return
	}
	pushChatWS(writeCh, wsOutbound{
		Type:            "aiResponse",
		SessionID:       reply.SessionID,
		Text:            reply.Text,
		ReferencedFiles: reply.ReferencedFiles,
	})
}

func (h *ChatHandler) handleSuggest(ctx context.Context, writeCh chan wsOutbound, in wsInbound) {
	cands := h.svc.Suggest(ctx, strings.TrimSpace(in.Query))
	files := make([]Suggestion, 0, len(cands))
	for _, c := range cands {
		files = append(files, Suggestion{
			Path:      c.RelPath,
			FullPath:  c.AbsPath,
			Name:      c.Name,
			Directory: c.Dir,
		})
	}
	pushChatWS(writeCh, wsOutbound{
		Type:  "workspaceFiles",
		Files: files,
	})
}

func (h *ChatHandler) handleFileContent(ctx context.Context, writeCh chan wsOutbound, in wsInbound) {
	token := strings.TrimSpace(in.FilePath)
	if token == "" {
		pushChatWS(writeCh, wsOutbound{
			Type: "error",
			Code: "invalid_argument",
			Text: "filePath is required",
		})
		return
	}
	rel, text, err := h.svc.ReadFile(ctx, token)
	if err != nil {
		code := "internal"
		var notFound *workspace.NotFoundError
		if errors.As(err, &notFound) || errors.Is(err, workspace.ErrNoWorkspace) {
			code = "not_found"
		}
		pushChatWS(writeCh, wsOutbound{
			Type: "error",
			Code: code,
			Text: err.Error(),
		})
		return
	}
	pushChatWS(writeCh, wsOutbound{
		Type:     "fileContent",
		FilePath: rel,
		Content:  text,
	})
}

func pushChatWS(writeCh chan wsOutbound, out wsOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
