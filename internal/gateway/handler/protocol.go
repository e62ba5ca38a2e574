package handler

// wsInbound is one client frame on the chat socket. Type selects the
// operation; the remaining fields are per-type payload.
type wsInbound struct {
	Type          string   `json:"type"`
	Text          string   `json:"text,omitempty"`
	AttachedFiles []string `json:"attachedFiles,omitempty"`
	Query         string   `json:"query,omitempty"`
	FilePath      string   `json:"filePath,omitempty"`
}

// Suggestion is one ranked workspace file offered to the mention picker.
type Suggestion struct {
	Path      string `json:"path"`
	FullPath  string `json:"fullPath"`
	Name      string `json:"name"`
	Directory string `json:"directory"`
}

// wsOutbound covers every server frame. Text doubles as the reply body
// on aiResponse frames and the human-readable message on error frames.
type wsOutbound struct {
	Type            string       `json:"type"`
	SessionID       string       `json:"sessionId,omitempty"`
	Text            string       `json:"text,omitempty"`
	ReferencedFiles []string     `json:"referencedFiles,omitempty"`
	Files           []Suggestion `json:"files,omitempty"`
	FilePath        string       `json:"filePath,omitempty"`
	Content         string       `json:"content,omitempty"`
	Code            string       `json:"code,omitempty"`
}
