// Package assemble turns a chat prompt and its file references into the
// final model input. Every referenced file is resolved against the
// workspace, read, and rendered as a fenced block ahead of the prompt.
package assemble

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"contextify/internal/content"
	"contextify/internal/mention"
)

// Resolver maps reference tokens to absolute paths and back to
// workspace-relative display paths. *workspace.Workspace satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
	Rel(abs string) string
}

// ReadFunc loads one resolved file. New defaults it to content.Read.
type ReadFunc func(absPath string) (string, error)

// FileContent is one successfully loaded reference.
type FileContent struct {
	RelPath string
	AbsPath string
	Content string
}

// Drop records a reference that could not be resolved or read. Drops never
// fail an assembly; the prompt goes out with whatever loaded.
type Drop struct {
	Token string
	Err   error
}

// Block is an assembled model input.
type Block struct {
	Prompt  string
	Files   []FileContent
	Dropped []Drop
}

const maxConcurrentLoads = 8

type Assembler struct {
	resolver Resolver
	read     ReadFunc
}

func New(resolver Resolver, read ReadFunc) *Assembler {
	if read == nil {
		read = content.Read
	}
	return &Assembler{resolver: resolver, read: read}
}

// Assemble resolves and reads every reference for prompt: attached files
// first, then @-mentions in order of first appearance. References that
// resolve to the same file collapse into one block, keeping the earliest
// position. Files are loaded concurrently but the block order follows the
// reference order.
func (a *Assembler) Assemble(ctx context.Context, prompt string, attached []string) *Block {
	var tokens []string
	seenTok := make(map[string]struct{})
	add := func(tok string) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return
		}
		if _, dup := seenTok[tok]; dup {
			return
		}
		seenTok[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	for _, tok := range attached {
		add(tok)
	}
	for _, tok := range mention.Extract(prompt) {
		add(tok)
	}

	type slot struct {
		fc   *FileContent
		drop *Drop
	}
	slots := make([]slot, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, tok := range tokens {
		g.Go(func() error {
			abs, err := a.resolver.Resolve(gctx, tok)
			if err != nil {
				slots[i] = slot{drop: &Drop{Token: tok, Err: err}}
				return nil
			}
			text, err := a.read(abs)
			if err != nil {
				slots[i] = slot{drop: &Drop{Token: tok, Err: err}}
				return nil
			}
			slots[i] = slot{fc: &FileContent{
				RelPath: a.resolver.Rel(abs),
				AbsPath: abs,
				Content: text,
			}}
			return nil
		})
	}
	_ = g.Wait()

	block := &Block{Prompt: prompt}
	seen := make(map[string]struct{}, len(tokens))
	for _, s := range slots {
		switch {
		case s.fc != nil:
			if _, dup := seen[s.fc.AbsPath]; dup {
				continue
			}
			seen[s.fc.AbsPath] = struct{}{}
			block.Files = append(block.Files, *s.fc)
		case s.drop != nil:
			block.Dropped = append(block.Dropped, *s.drop)
		}
	}
	return block
}

// Render produces the exact text sent to the model: one fenced block per
// loaded file, then the prompt.
func (b *Block) Render() string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	for _, f := range b.Files {
		sb.WriteString("File: ")
		sb.WriteString(f.RelPath)
		sb.WriteString("\n```")
		sb.WriteString(LanguageTag(f.RelPath))
		sb.WriteString("\n")
		sb.WriteString(f.Content)
		sb.WriteString("\n```\n\n")
	}
	sb.WriteString(b.Prompt)
	return sb.String()
}

// ReferencedFiles lists the display path of every file that made it into
// the block, in render order.
func (b *Block) ReferencedFiles() []string {
	if b == nil || len(b.Files) == 0 {
		return nil
	}
	out := make([]string, len(b.Files))
	for i, f := range b.Files {
		out[i] = f.RelPath
	}
	return out
}
