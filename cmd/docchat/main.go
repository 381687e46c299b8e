package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/avernet/docchat"
	"github.com/avernet/docchat/history"
)

const recentHistoryWindow = 5

func main() {
	docPath := flag.String("doc", "", "Path to the PDF or DOCX document")
	sessionID := flag.String("session", "", "Existing chat session ID (new session when empty)")
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := godotenv.Load(*envFile); err != nil {
		slog.Info("no env file loaded, using process environment", "path", *envFile)
	}

	cfg := docchat.FromEnv()

	engine, err := docchat.New(cfg)
	if err != nil {
		slog.Error("creating engine", "error", err)
		os.Exit(1)
	}

	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		slog.Error("opening history store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	session, err := resolveSession(ctx, store, *sessionID, *docPath)
	if err != nil {
		slog.Error("resolving session", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Session %s (%s). Empty input asks for a summary; Ctrl-D exits.\n", session.ID, session.Name)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			query = cfg.DefaultQuery
		}

		recent, err := store.Recent(ctx, session.ID, recentHistoryWindow)
		if err != nil {
			slog.Error("reading history", "error", err)
			continue
		}

		answer, err := engine.ProcessDocumentQuery(ctx, *docPath, query, recent)
		if err != nil {
			fmt.Printf("Could not process the document: %v\n", err)
			continue
		}
		fmt.Println(answer)

		if err := appendTurn(ctx, store, session, query, answer); err != nil {
			slog.Error("saving chat turn", "error", err)
		}
	}
}

// resolveSession loads the named session or creates a fresh one for the
// document.
func resolveSession(ctx context.Context, store *history.Store, id, docPath string) (*history.Session, error) {
	if id != "" {
		return store.GetSession(ctx, id)
	}

	name := "New Chat"
	if docPath != "" {
		name = filepath.Base(docPath)
	}
	return store.CreateSession(ctx, name, docPath)
}

// appendTurn persists a user/answer pair, retrying once on a version
// conflict with a freshly read session.
func appendTurn(ctx context.Context, store *history.Store, session *history.Session, query, answer string) error {
	err := store.AppendTurn(ctx, session.ID, query, answer, session.Version)
	if errors.Is(err, history.ErrVersionConflict) {
		fresh, gerr := store.GetSession(ctx, session.ID)
		if gerr != nil {
			return gerr
		}
		*session = *fresh
		err = store.AppendTurn(ctx, session.ID, query, answer, session.Version)
	}
	if err != nil {
		return err
	}
	session.Version++
	return nil
}
