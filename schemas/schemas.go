// Package schemas holds the JSON Schemas of the request and response documents.
package schemas

import "embed"

// Schema file names.
const (
	MatchRequest   = "match_request.schema.json"
	MatchResponse  = "match_response.schema.json"
	FilterResponse = "filter_response.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
