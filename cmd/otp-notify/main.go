package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const usage = `Usage:
  otp-notify admin <text> [--markdown] [--silent]
  otp-notify status <message> [--error]
  otp-notify error <error> [context]`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 3 {
		fmt.Println(usage)
		os.Exit(1)
	}

	path, body, err := buildRequest(os.Args[1], os.Args[2:])
	if err != nil {
		fmt.Printf("Error: %v\n%s\n", err, usage)
		os.Exit(1)
	}

	if err := post(apiURL()+path, body); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Notification sent successfully!")
}

// apiURL returns the bot API base URL from BOT_API_URL or BOT_API_PORT
func apiURL() string {
	if u := os.Getenv("BOT_API_URL"); u != "" {
		return strings.TrimRight(u, "/")
	}
	port := os.Getenv("BOT_API_PORT")
	if port == "" {
		port = "9876"
	}
	return "http://127.0.0.1:" + port
}

// buildRequest maps a subcommand and its arguments to an API path and body
func buildRequest(cmd string, args []string) (string, interface{}, error) {
	text := args[0]
	flags := map[string]bool{}
	var rest []string
	for _, a := range args[1:] {
		if strings.HasPrefix(a, "--") {
			flags[strings.TrimPrefix(a, "--")] = true
		} else {
			rest = append(rest, a)
		}
	}

	switch cmd {
	case "admin":
		mode := ""
		if flags["markdown"] {
			mode = "MarkdownV2"
		}
		return "/api/notify/admin", map[string]interface{}{
			"text":       text,
			"parse_mode": mode,
			"silent":     flags["silent"],
		}, nil
	case "status":
		return "/api/notify/status", map[string]interface{}{
			"message":  text,
			"is_error": flags["error"],
		}, nil
	case "error":
		label := ""
		if len(rest) > 0 {
			label = rest[0]
		}
		return "/api/notify/error", map[string]interface{}{
			"error":   text,
			"context": label,
		}, nil
	default:
		return "", nil, fmt.Errorf("unknown command %q", cmd)
	}
}

func post(url string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("bot API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bot API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
