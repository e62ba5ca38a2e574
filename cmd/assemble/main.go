// Command assemble resolves a prompt's file references against a
// workspace and prints the context block that would be sent to the
// model. Useful for debugging reference resolution without a server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"contextify/internal/assemble"
	"contextify/internal/workspace"
)

type fileView struct {
	RelPath string `json:"relPath"`
	AbsPath string `json:"absPath"`
}

type dropView struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

type blockView struct {
	Prompt  string     `json:"prompt"`
	Files   []fileView `json:"files"`
	Dropped []dropView `json:"dropped,omitempty"`
}

func main() {
	roots := flag.String("roots", "", "workspace roots, separated by the OS path list separator")
	prompt := flag.String("prompt", "", "chat prompt, may contain @file references")
	attach := flag.String("attach", "", "comma separated file tokens to attach explicitly")
	asJSON := flag.Bool("json", false, "emit the assembled block as JSON instead of rendered text")
	flag.Parse()

	_ = godotenv.Load()

	if strings.TrimSpace(*prompt) == "" {
		log.Fatal("--prompt is required")
	}

	rootList := filepath.SplitList(*roots)
	if len(rootList) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatal(err)
		}
		rootList = []string{wd}
	}
	ws, err := workspace.New(rootList...)
	if err != nil {
		log.Fatal(err)
	}

	var attached []string
	for _, tok := range strings.Split(*attach, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			attached = append(attached, tok)
		}
	}

	block := assemble.New(ws, nil).Assemble(context.Background(), *prompt, attached)
	for _, d := range block.Dropped {
		log.Printf("dropped %q: %v", d.Token, d.Err)
	}

	if !*asJSON {
		fmt.Print(block.Render())
		return
	}

	view := blockView{Prompt: block.Prompt, Files: make([]fileView, 0, len(block.Files))}
	for _, f := range block.Files {
		view.Files = append(view.Files, fileView{RelPath: f.RelPath, AbsPath: f.AbsPath})
	}
	for _, d := range block.Dropped {
		view.Dropped = append(view.Dropped, dropView{Token: d.Token, Error: d.Err.Error()})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		log.Fatal(err)
	}
}
