package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "list_scores",
		Description: "List employee score details ranked by proficiency score (prscore), highest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to skip",
				},
			},
		},
	},
	{
		Name:        "get_score",
		Description: "Get the score detail of one employee including every point and, optionally, the archived prior scores.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"emp_id": map[string]interface{}{
					"type":        "string",
					"description": "Employee ID",
				},
				"include_history": map[string]interface{}{
					"type":        "boolean",
					"description": "Include archived prior scores, newest first (default: false)",
				},
			},
			"required": []string{"emp_id"},
		},
	},
	{
		Name:        "list_batches",
		Description: "List scoring runs with their lifecycle status, most recent first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of batches to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_batch",
		Description: "Get one scoring run by its batch number.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"batch_id": map[string]interface{}{
					"type":        "integer",
					"description": "Batch sequence number",
				},
			},
			"required": []string{"batch_id"},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get aggregate statistics about persisted scores and the latest scoring run.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
