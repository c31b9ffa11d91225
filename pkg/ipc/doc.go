// SPDX-License-Identifier: MPL-2.0

// Package ipc is the bridge transport between a coordinator process and the
// content processes it spawns.
//
// The coordinator runs a Server on the loopback interface with a random port
// and a random bearer token, and hands both to each child through the
// environment (see Server.Env). Children build a Client with
// NewClientFromEnv.
//
// Endpoints:
//
//	POST /ipc/send     content -> coordinator, fire-and-forget
//	POST /ipc/invoke   content -> coordinator, request/response
//	GET  /ipc/events   coordinator -> content, newline-delimited JSON stream
//	GET  /health       liveness, unauthenticated
//
// Every envelope carries a UUID; the server drops envelopes whose ID it has
// already seen, so a retried send is delivered at most once. Delivery from
// the coordinator to a content process only reaches clients subscribed at
// the time of the send.
package ipc
