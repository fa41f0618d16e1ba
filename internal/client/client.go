// Package client is a Go client for the block HTTP API. It satisfies
// tree.Fetcher, so view-model trees can be synced straight off a remote
// server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/octoboard/octoboard/internal/blocks"
)

// Client talks to a block server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8088".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, res.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetSubTree fetches a block and its descendants down to depth levels.
func (c *Client) GetSubTree(ctx context.Context, rootID string, depth int) ([]blocks.Block, error) {
	path := "/api/v1/blocks/" + url.PathEscape(rootID) + "/subtree?depth=" + strconv.Itoa(depth)
	var result []blocks.Block
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetBlocksWithType fetches all blocks of one type.
func (c *Client) GetBlocksWithType(ctx context.Context, blockType blocks.Type) ([]blocks.Block, error) {
	path := "/api/v1/blocks?type=" + url.QueryEscape(string(blockType))
	var result []blocks.Block
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetBlocksWithParent fetches the direct children of a block.
func (c *Client) GetBlocksWithParent(ctx context.Context, parentID string) ([]blocks.Block, error) {
	path := "/api/v1/blocks?parent_id=" + url.QueryEscape(parentID)
	var result []blocks.Block
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// InsertBlocks upserts a batch of blocks.
func (c *Client) InsertBlocks(ctx context.Context, blockSet []blocks.Block) error {
	body, err := json.Marshal(blockSet)
	if err != nil {
		return fmt.Errorf("failed to encode blocks: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/v1/blocks", bytes.NewReader(body), nil)
}

// DeleteBlock tombstones a block and its subtree on the server.
func (c *Client) DeleteBlock(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/blocks/"+url.PathEscape(id), nil, nil)
}

// ExportArchive downloads the server's contents as an archive.
func (c *Client) ExportArchive(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/blocks/export", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("export request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("export: unexpected status %d", res.StatusCode)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read archive: %w", err)
	}
	return string(data), nil
}

// ImportArchive uploads an archive to the server.
func (c *Client) ImportArchive(ctx context.Context, content string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/blocks/import", strings.NewReader(content), nil)
}
