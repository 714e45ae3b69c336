// Package immich is a minimal client for the Immich photo server API.
//
// Only two read-only endpoints are used:
//   - GET {api}/albums/{id}?withoutAssets=false returns the album with all assets.
//     The response is not paginated, so a successful fetch is the complete,
//     authoritative asset set.
//   - GET {api}/assets/{id}/original streams the original binary of one asset.
//
// Both send the API key in the x-api-key header. Failures are reported as
// *FetchError or *DownloadError with a Kind (network, status, decode, io).
// Nothing is retried.
//
// # Usage
//
//	client := immich.NewClient(cfg.APIURL, cfg.APIKey, cfg.HTTP)
//	album, err := client.GetAlbum(ctx, cfg.AlbumID)
//	n, err := client.DownloadOriginal(ctx, album.Assets[0].ID, file)
package immich
