package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// JSON-RPC error code returned by the tool server when the requested tool
// does not exist (implementation-defined server error range).
const codeToolNotFound = -32000

// HTTPClient talks JSON-RPC 2.0 over HTTP to a tool server exposing
// tools/list and tools/call.
type HTTPClient struct {
	url        string
	httpClient *http.Client
	nextID     atomic.Int64
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) {
		h.httpClient = c
	}
}

// NewHTTPClient creates a catalog client for the given tool server URL.
func NewHTTPClient(url string, opts ...HTTPOption) (*HTTPClient, error) {
	if url == "" {
		return nil, fmt.Errorf("tool server URL is required")
	}

	h := &HTTPClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// rpcRequest is a JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcResponse is a JSON-RPC 2.0 response envelope.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// listResult is the tools/list result payload.
type listResult struct {
	Tools []wireTool `json:"tools"`
}

// wireTool is the tools/list entry shape.
type wireTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

// callParams is the tools/call params payload.
type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// callResult is the tools/call result payload.
type callResult struct {
	StructuredContent any `json:"structuredContent"`
}

// ListTools fetches the tool catalog from the server.
func (h *HTTPClient) ListTools(ctx context.Context) ([]Descriptor, error) {
	raw, err := h.rpc(ctx, "tools/list", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	var result listResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode tool list: %w", err)
	}

	descriptors := make([]Descriptor, 0, len(result.Tools))
	for _, t := range result.Tools {
		descriptors = append(descriptors, Descriptor{
			Name:        t.Name,
			Description: t.Description,
			Schema:      t.InputSchema,
		})
	}
	return descriptors, nil
}

// CallTool executes a named tool on the server and returns its structured
// content.
func (h *HTTPClient) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	if args == nil {
		args = map[string]any{}
	}

	raw, err := h.rpc(ctx, "tools/call", callParams{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("failed to call tool %q: %w", name, err)
	}

	var result callResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result of tool %q: %w", name, err)
	}
	return result.StructuredContent, nil
}

// rpc performs one JSON-RPC round trip and returns the raw result.
func (h *HTTPClient) rpc(ctx context.Context, method string, params any) (json.RawMessage, error) {
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      h.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tool server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tool server returned status %d: %s", resp.StatusCode, string(body))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if rpcResp.Error != nil {
		if rpcResp.Error.Code == codeToolNotFound {
			return nil, fmt.Errorf("%s: %w", rpcResp.Error.Message, ErrToolNotFound)
		}
		return nil, fmt.Errorf("tool server error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	return rpcResp.Result, nil
}
