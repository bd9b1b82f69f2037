package kymia

import "net/http"

// SetHTTPClient swaps the download client and returns a function that
// puts the old one back.
func SetHTTPClient(c *http.Client) func() {
	old := httpClient
	httpClient = c
	return func() { httpClient = old }
}
