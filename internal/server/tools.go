package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sourceProperties describes the arguments shared by tools that accept
// either a directory or a saved table.
func sourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"directory": map[string]interface{}{
			"type":        "string",
			"description": "Directory to scan for images. Mutually exclusive with path",
		},
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Saved shape table to load instead of scanning. Mutually exclusive with directory",
		},
		"recursive": map[string]interface{}{
			"type":        "boolean",
			"description": "Scan subdirectories too. Default false",
			"default":     false,
		},
		"follow_symlinks": map[string]interface{}{
			"type":        "boolean",
			"description": "Descend into symlinked directories during a recursive scan. Default false",
			"default":     false,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	chartProps := sourceProperties()
	chartProps["width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Chart width in pixels, 160 to 8192. Default 800",
		"default":     800,
	}
	chartProps["height"] = map[string]interface{}{
		"type":        "integer",
		"description": "Chart height in pixels, 160 to 8192. Default 600",
		"default":     600,
	}
	chartProps["low"] = map[string]interface{}{
		"type":        "string",
		"description": "Hex colour for the least frequent shapes. Default #00BFFF",
	}
	chartProps["high"] = map[string]interface{}{
		"type":        "string",
		"description": "Hex colour for the most frequent shapes. Default #0000CD",
	}

	return []Tool{
		{
			Name:        "shapes_scan",
			Description: "Scan a directory for images and count how many share each (width, height). Files are recognised by content, not extension. Unreadable images are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory to scan",
					},
					"recursive": map[string]interface{}{
						"type":        "boolean",
						"description": "Scan subdirectories too. Default false",
						"default":     false,
					},
					"follow_symlinks": map[string]interface{}{
						"type":        "boolean",
						"description": "Descend into symlinked directories during a recursive scan. Default false",
						"default":     false,
					},
					"save": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to save the shape table to. The file must not exist",
					},
				},
				"required": []string{"directory"},
			},
		},
		{
			Name:        "shapes_load",
			Description: "Load a shape table saved by an earlier scan.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the table file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "shapes_summary",
			Description: "Summarize a shape distribution: distinct shapes, total images, most common shape and the width/height extremes.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sourceProperties(),
			},
		},
		{
			Name:        "shapes_chart",
			Description: "Render a shape distribution as a bubble chart and return it as base64-encoded PNG. Bubble size and colour grow with the count.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": chartProps,
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
