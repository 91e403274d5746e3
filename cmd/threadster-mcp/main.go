package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// threadResponse mirrors the Threadster API response, success or failure.
type threadResponse struct {
	OK       bool     `json:"ok"`
	Message  string   `json:"message"`
	Creator  string   `json:"creator"`
	Username string   `json:"username"`
	Avatar   string   `json:"avatar"`
	Caption  string   `json:"caption"`
	URL      []string `json:"url"`
}

func main() {
	apiURL := os.Getenv("THREADSTER_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	s := server.NewMCPServer(
		"threadster",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	fetchThreadTool := mcp.NewTool("fetch_thread",
		mcp.WithDescription("Look up a Threads post and return its author, caption, avatar and downloadable media links."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The post ID (e.g. DEHwQg6Bl-s) or a full https://www.threads.net/@user/post/<id> link"),
		),
	)
	s.AddTool(fetchThreadTool, handleFetchThread(apiURL))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiGet calls the Threadster lookup endpoint and returns the response body.
func apiGet(ctx context.Context, client *http.Client, apiURL, id string) ([]byte, error) {
	endpoint := strings.TrimRight(apiURL, "/") + "/api/threadster?id=" + url.QueryEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleFetchThread(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		respBody, err := apiGet(ctx, client, apiURL, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup request failed: %v", err)), nil
		}

		var threadResp threadResponse
		if err := json.Unmarshal(respBody, &threadResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse lookup response: %v", err)), nil
		}

		if !threadResp.OK {
			return mcp.NewToolResultError(threadResp.Message), nil
		}

		return mcp.NewToolResultText(formatThread(&threadResp)), nil
	}
}

func formatThread(t *threadResponse) string {
	var sb strings.Builder
	if t.Username != "" {
		sb.WriteString(fmt.Sprintf("Author: @%s\n", t.Username))
	}
	if t.Avatar != "" {
		sb.WriteString(fmt.Sprintf("Avatar: %s\n", t.Avatar))
	}
	if t.Caption != "" {
		sb.WriteString(fmt.Sprintf("Caption: %s\n", t.Caption))
	}
	sb.WriteString(fmt.Sprintf("\nFound %d media links:\n\n", len(t.URL)))
	for _, u := range t.URL {
		sb.WriteString(u + "\n")
	}
	return sb.String()
}
