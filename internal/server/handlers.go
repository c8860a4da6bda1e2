package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/imgshape/internal/pipeline"
	"github.com/ironsheep/imgshape/internal/render"
	"github.com/ironsheep/imgshape/internal/shape"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "shapes_scan").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// DistributionResult is returned by shapes_scan and shapes_load.
type DistributionResult struct {
	// Source is the directory scanned or the table loaded.
	Source  string        `json:"source"`
	Entries []shape.Entry `json:"entries"`
	Summary shape.Summary `json:"summary"`

	// Saved is the table file written, if any.
	Saved string `json:"saved,omitempty"`
}

// ChartResult is returned by shapes_chart.
type ChartResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Shapes      int    `json:"shapes"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Printf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "shapes_scan":
		return s.handleShapesScan(args)
	case "shapes_load":
		return s.handleShapesLoad(args)
	case "shapes_summary":
		return s.handleShapesSummary(args)
	case "shapes_chart":
		return s.handleShapesChart(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as the zero
// value.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// sourceArgs selects a distribution: a directory to scan or a table to load.
type sourceArgs struct {
	Directory      string `json:"directory"`
	Path           string `json:"path"`
	Recursive      bool   `json:"recursive"`
	FollowSymlinks bool   `json:"follow_symlinks"`
}

func (a sourceArgs) request() pipeline.Request {
	return pipeline.Request{
		Directory:      a.Directory,
		Recursive:      a.Recursive,
		FollowSymlinks: a.FollowSymlinks,
		TableFile:      a.Path,
	}
}

func (a sourceArgs) source() string {
	if a.Path != "" {
		return a.Path
	}
	return a.Directory
}

func distributionResult(source string, res *pipeline.Result) *DistributionResult {
	return &DistributionResult{
		Source:  source,
		Entries: res.Distribution.Entries(),
		Summary: shape.Summarize(res.Distribution),
		Saved:   res.Saved,
	}
}

type shapesScanArgs struct {
	Directory      string `json:"directory"`
	Recursive      bool   `json:"recursive"`
	FollowSymlinks bool   `json:"follow_symlinks"`
	Save           string `json:"save"`
}

func (s *Server) handleShapesScan(args json.RawMessage) (interface{}, error) {
	var a shapesScanArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Directory == "" {
		return nil, fmt.Errorf("directory is required: %w", shape.ErrConfiguration)
	}

	res, err := s.runner.Run(pipeline.Request{
		Directory:      a.Directory,
		Recursive:      a.Recursive,
		FollowSymlinks: a.FollowSymlinks,
		OutputFile:     a.Save,
	})
	if err != nil {
		return nil, err
	}
	return distributionResult(a.Directory, res), nil
}

type shapesLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleShapesLoad(args json.RawMessage) (interface{}, error) {
	var a shapesLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required: %w", shape.ErrConfiguration)
	}

	res, err := s.runner.Run(pipeline.Request{TableFile: a.Path})
	if err != nil {
		return nil, err
	}
	return distributionResult(a.Path, res), nil
}

func (s *Server) handleShapesSummary(args json.RawMessage) (interface{}, error) {
	var a sourceArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	res, err := s.runner.Run(a.request())
	if err != nil {
		return nil, err
	}
	return shape.Summarize(res.Distribution), nil
}

type shapesChartArgs struct {
	sourceArgs
	render.Options
}

func (s *Server) handleShapesChart(args json.RawMessage) (interface{}, error) {
	var a shapesChartArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	res, err := s.runner.Run(a.request())
	if err != nil {
		return nil, err
	}

	img, err := render.Chart(res.Distribution, a.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart for %s: %w", a.source(), err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ChartResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Shapes:      res.Distribution.Len(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
