package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `projectadmin manages projects on the project API as the logged-in user.

Tools:
- list_teams / list_managers: reference data; use the returned _id values as team_id / manager_id.
- list_projects: one page (12 rows) of projects plus summary counts for the whole filtered set.
- create_project / update_project: name and manager_id are required; deadline is YYYY-MM-DD.
- delete_project: permanent; only admins and managers may delete.

If a tool reports UNAUTHORIZED the stored token has been cleared; ask the user to run
"projectadmin login" and retry.

Docs:
- projectadmin://docs/filters (how list_projects filters combine)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "projectadmin://docs/filters",
		Name:        "docs_filters",
		Title:       "Project list filters",
		Description: "How list_projects criteria, paging and summary counts behave.",
		Content: `# Project list filters

All criteria are optional and combine with AND. Empty values are ignored.

- search: case-insensitive substring of the project name or description.
- status: one of "In Progress", "Completed", "On Hold".
- team / manager: ids from list_teams / list_managers.
- from / to: inclusive deadline bounds, YYYY-MM-DD. Projects without a deadline never match a bound.

## Paging

Pages hold 12 projects, newest first. A page with fewer than 12 rows is the last one.
has_next in the result tells you whether to ask for page+1.

## Summary

summary counts (total, completed, inProgress, onHold) cover every project matching
the filter, not only the returned page.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
