package repositories

import "context"

// RateSourceClient fetches JSON documents from the third-party currency API.
type RateSourceClient interface {
	// GetJSON performs a GET on url and decodes the JSON body into dst. It
	// fails on transport errors, non-2xx statuses and undecodable bodies.
	GetJSON(ctx context.Context, url string, dst any) error
}

// FetchJSON is the typed form of RateSourceClient.GetJSON.
func FetchJSON[T any](ctx context.Context, client RateSourceClient, url string) (T, error) {
	var out T
	if err := client.GetJSON(ctx, url, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
