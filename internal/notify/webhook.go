package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// postJSON sends payload as a JSON body and treats any non-2xx status as failure.
func postJSON(ctx context.Context, client *http.Client, target string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "tellydone")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// discordEndpoint posts to a Discord webhook.
type discordEndpoint struct {
	id, token string
	baseURL   string
	client    *http.Client
}

func newDiscordEndpoint(rest string) (*discordEndpoint, error) {
	segs := pathSegments(rest)
	if len(segs) != 2 {
		return nil, fmt.Errorf("%w: discord:// needs a webhook id and token", ErrInvalidAddress)
	}
	return &discordEndpoint{
		id:      segs[0],
		token:   segs[1],
		baseURL: "https://discord.com/api/webhooks",
		client:  httpClient,
	}, nil
}

func (e *discordEndpoint) Name() string {
	return "discord://" + e.id + "/" + mask(e.token)
}

func (e *discordEndpoint) Send(ctx context.Context, n Notification) error {
	content := n.Body
	if n.Title != "" {
		content = "**" + n.Title + "**\n" + n.Body
	}
	return postJSON(ctx, e.client, e.baseURL+"/"+e.id+"/"+e.token, map[string]string{
		"username": "tellydone",
		"content":  content,
	})
}

// slackEndpoint posts to a Slack incoming webhook.
type slackEndpoint struct {
	tokens  [3]string
	baseURL string
	client  *http.Client
}

func newSlackEndpoint(rest string) (*slackEndpoint, error) {
	segs := pathSegments(rest)
	if len(segs) != 3 {
		return nil, fmt.Errorf("%w: slack:// needs three webhook tokens", ErrInvalidAddress)
	}
	return &slackEndpoint{
		tokens:  [3]string{segs[0], segs[1], segs[2]},
		baseURL: "https://hooks.slack.com/services",
		client:  httpClient,
	}, nil
}

func (e *slackEndpoint) Name() string {
	return "slack://" + e.tokens[0] + "/" + e.tokens[1] + "/" + mask(e.tokens[2])
}

func (e *slackEndpoint) Send(ctx context.Context, n Notification) error {
	text := n.Body
	if n.Title != "" {
		text = "*" + n.Title + "*\n" + n.Body
	}
	return postJSON(ctx, e.client, e.baseURL+"/"+strings.Join(e.tokens[:], "/"), map[string]string{
		"text": text,
	})
}

// jsonPayload matches the apprise JSON notification format.
type jsonPayload struct {
	Version string `json:"version"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// jsonEndpoint posts a generic JSON document to an HTTP(S) URL.
type jsonEndpoint struct {
	target string
	name   string
	client *http.Client
}

func newJSONEndpoint(address string) (*jsonEndpoint, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %s:// needs a host", ErrInvalidAddress, u.Scheme)
	}
	name := u.Scheme + "://" + u.Host + u.Path
	if strings.EqualFold(u.Scheme, "jsons") {
		u.Scheme = "https"
	} else {
		u.Scheme = "http"
	}
	return &jsonEndpoint{target: u.String(), name: name, client: httpClient}, nil
}

func (e *jsonEndpoint) Name() string { return e.name }

func (e *jsonEndpoint) Send(ctx context.Context, n Notification) error {
	kind := n.NotificationType
	if kind == "" {
		kind = TypeInfo
	}
	return postJSON(ctx, e.client, e.target, jsonPayload{
		Version: "1.0",
		Title:   n.Title,
		Message: n.Body,
		Type:    string(kind),
	})
}
