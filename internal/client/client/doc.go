// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the remote account service (see the
//     AccountClient interface): ExistsByEmail, Login, Register and
//     NicknameExists.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that tags every
//     request with an X-Request-ID, sends the provider token as a bearer
//     credential and maps transport and HTTP failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase) for the session database,
//     applying the embedded goose migrations.
//
// # Error Handling
//
// Callers match failures with errors.Is: ErrUnavailable (transport error or
// 5xx), ErrUnauthorized (401/403), ErrRequestFailed (any other rejection or
// success=false) and ErrInvalidResponse (undecodable body or missing user).
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
