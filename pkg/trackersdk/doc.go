/*
Package trackersdk provides the wire types and a Go client for the tracker
HTTP API.

# Client vs Session

  - Client: unauthenticated operations (health checks, login)
  - Session: operations that carry a bearer token

Typical use:

	client := trackersdk.NewClient("http://localhost:8080")

	health, err := client.GetReadiness(ctx)

	session, err := client.Login(ctx, "alice", "correct-horse")

	entries, err := session.AddEntries(ctx, trackersdk.AddEntriesRequest{
		Date: "2024-03-01",
		Entries: []trackersdk.EntryLine{
			{ProjectID: projectID, Hours: "8.5"},
		},
	})

# Errors

Every non-2xx reply is returned as an *APIError carrying the HTTP status
and the {"error", "error_description"} body:

	var apiErr *trackersdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		// not allowed
	}

# Reports

ExportReport returns the raw xlsx bytes; PreviewReport returns the same
table as JSON.
*/
package trackersdk
