package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for bumpbook resources.
	uriScheme = "bumpbook://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sections",
		Name:        "sections",
		Description: "Every knowledge section, in document order",
		MIMEType:    "application/json",
	}, s.handleSectionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "weeks/{week}",
		Name:        "week",
		Description: "Timeline entries covering a week of pregnancy",
		MIMEType:    "application/json",
	}, s.handleWeekResource)
}

// handleSectionsResource returns every section without its embedding.
func (s *Server) handleSectionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	sections := s.ports.Index.Sections()
	infos := make([]SectionOutput, len(sections))
	for i, section := range sections {
		infos[i] = SectionOutput{ID: section.ID, Content: section.Content}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sections: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleWeekResource returns the timeline entries for one week.
func (s *Server) handleWeekResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Lookup == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	week, ok := extractWeek(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entries := s.ports.Lookup.WeekInfo(week)
	if entries == nil {
		entries = []domain.TimelineEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling week %d: %w", week, err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractWeek extracts the week from a URI like bumpbook://weeks/{week}.
func extractWeek(uri string) (int, bool) {
	const prefix = uriScheme + "weeks/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	week, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || week < 1 {
		return 0, false
	}
	return week, true
}
