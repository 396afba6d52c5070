package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	URISummary = "empscore://summary"
	URITop     = "empscore://top"
	URIBatches = "empscore://batches"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         URISummary,
		Name:        "Score Summary",
		Description: "Counts and averages of persisted scores and the latest run",
		MimeType:    "text/plain",
	},
	{
		URI:         URITop,
		Name:        "Top Scores",
		Description: "The 10 employees with the highest proficiency score",
		MimeType:    "text/plain",
	},
	{
		URI:         URIBatches,
		Name:        "Recent Runs",
		Description: "The last 10 scoring runs and their status",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
