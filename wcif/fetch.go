package wcif

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultBaseURL is the public WCA API root serving WCIF documents.
const DefaultBaseURL = "https://www.worldcubeassociation.org/api/v0"

// Fetch retrieves the public WCIF document for a competition id. A nil
// client falls back to http.DefaultClient. The request is made exactly once;
// any transport failure or non-success status is wrapped in a FetchError.
func Fetch(ctx context.Context, client *http.Client, baseURL, competitionID string) (*Competition, error) {
	if client == nil {
		client = http.DefaultClient
	}
	url := fmt.Sprintf("%s/competitions/%s/wcif/public", baseURL, competitionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &FetchError{URL: url, Status: resp.Status}
	}

	comp, err := Decode(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return comp, nil
}

// Decode parses a WCIF JSON document from r.
func Decode(r io.Reader) (*Competition, error) {
	var comp Competition
	if err := json.NewDecoder(r).Decode(&comp); err != nil {
		return nil, fmt.Errorf("decoding WCIF document: %w", err)
	}
	return &comp, nil
}
