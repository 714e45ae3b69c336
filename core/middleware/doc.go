// Package middleware groups the fiber middleware used by the serve command.
//
// # Components
//
//   - auth: checks the x-api-key header against server.api_key.
//   - rayid: assigns every request an X-Ray-ID, stored in locals for logging.
//
// rayid is registered first so rejected requests are traced too.
package middleware
