// Package sonarr provides a client for the parts of the Sonarr v3 API used to
// prune episodes: series lookup by TVDB ID, tag and episode listing, episode
// file deletion and episode unmonitoring.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := sonarr.NewClient(
//		"https://sonarr.example.com",
//		"your-api-key",
//		logger,
//		sonarr.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	series, err := client.SeriesByTVDBID(ctx, "81189")
//
// Every request is sent to the /api/v3/ root of the configured host, whatever
// path the base URL carried. The API key travels in the X-Api-Key header and is
// redacted from debug output, String/GoString and error text.
//
// # Unmonitoring
//
// Sonarr has no partial update for episodes, so UnmonitorEpisode reads the full
// episode, clears the monitored flag and writes the whole record back. The
// record keeps every field the server sent, including ones this package does
// not model. The two requests are not atomic: a change made by someone else
// between the read and the write is overwritten. Sonarr offers no revision
// token to guard against that.
//
// # Error Handling
//
//   - ErrInvalidURL, ErrInvalidCredential: returned by NewClient
//   - TransportError: the request never produced a response
//   - StatusError: non-2xx response, matches ErrNotFound / ErrUnauthorized
//   - DecodeError: 2xx response whose body did not decode
//
// Kind classifies any error returned by this package.
package sonarr
