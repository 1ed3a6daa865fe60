// Package client is the Go client for the lookup HTTP API.
//
//	c := client.New(client.WithBaseURL("http://localhost:8000"))
//	recs, err := c.Search(ctx, "jill@gmail.com", "")
//
// A 400 response is returned as *ValidationError (errors.Is(err, ErrValidation)).
// Failing to reach the service wraps ErrTransport.
package client
