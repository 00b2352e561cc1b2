package main

// Send one prompt through a running relay:
//   go run ./cmd/prompt "Explain goroutines in one sentence"
//   echo "notes" | go run ./cmd/prompt -file resume.pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"career-backend/internal/extract"
	"career-backend/internal/llm/relayclient"
)

const defaultRelayURL = "http://localhost:4000"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("prompt", flag.ContinueOnError)
	relayURL := fs.String("relay", envOr("RELAY_URL", defaultRelayURL), "Relay base URL")
	raw := fs.Bool("raw", false, "Print the full response envelope instead of the first text block")
	filePath := fs.String("file", "", "Resume file (pdf, docx, txt, md) whose text is appended to the prompt")
	timeout := fs.Duration("timeout", 90*time.Second, "Request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prompt := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if prompt == "" {
		in, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		prompt = strings.TrimSpace(string(in))
	}
	if *filePath != "" {
		text, err := fileText(ctx, *filePath)
		if err != nil {
			return err
		}
		prompt = strings.TrimSpace(prompt + "\n\n" + text)
	}
	if prompt == "" {
		return errors.New("prompt is required (pass it as arguments or on stdin)")
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	client := relayclient.New(*relayURL)

	if *raw {
		body, err := client.Raw(ctx, prompt)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err != nil {
			buf.Reset()
			buf.Write(body)
		}
		buf.WriteByte('\n')
		_, err = stdout.Write(buf.Bytes())
		return err
	}

	text, err := client.Complete(ctx, prompt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, text)
	return err
}

func fileText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	text, err := extract.ExtractTextFromBytes(ctx, data, "", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
