// Package toolserver exposes a tool registry over JSON-RPC 2.0 on HTTP,
// implementing the tools/list and tools/call methods the catalog client
// consumes.
package toolserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/zen-systems/bioroute/pkg/tools"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolNotFound   = -32000
)

// Server serves a tool registry over JSON-RPC. Safe for concurrent use.
type Server struct {
	registry *tools.Registry
	log      *slog.Logger
}

// New creates a server over the given registry.
func New(registry *tools.Registry, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{registry: registry, log: log}
}

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type wireTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ServeHTTP handles one JSON-RPC request per POST.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.reply(w, rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error"}})
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		s.reply(w, rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: codeInvalidRequest, Message: "invalid request"}})
		return
	}

	switch req.Method {
	case "tools/list":
		s.reply(w, rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: s.listTools()})
	case "tools/call":
		s.reply(w, s.callTool(req))
	default:
		s.reply(w, rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{
			Code:    codeMethodNotFound,
			Message: fmt.Sprintf("method %q not found", req.Method),
		}})
	}
}

func (s *Server) listTools() map[string]any {
	list := s.registry.List()
	wire := make([]wireTool, 0, len(list))
	for _, t := range list {
		wire = append(wire, wireTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return map[string]any{"tools": wire}
}

func (s *Server) callTool(req rpcRequest) rpcResponse {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		return rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{
			Code:    codeInvalidParams,
			Message: "tools/call requires a tool name and an arguments object",
		}}
	}

	tool, ok := s.registry.Get(params.Name)
	if !ok {
		s.log.Warn("unknown tool requested", "tool", params.Name)
		return rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{
			Code:    codeToolNotFound,
			Message: fmt.Sprintf("tool %q not found", params.Name),
		}}
	}

	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}

	s.log.Info("executing tool", "tool", params.Name)
	result := tool.Run(params.Arguments)

	return rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{
		"structuredContent": result,
	}}
}

func (s *Server) reply(w http.ResponseWriter, resp rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}
