// Package http implements the REST transport of the marketplace.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as bearer-token authentication, request tracing, access
// logging, metrics, response compression and CORS are handled in this
// package before requests are delegated to the service layer. Every error
// response is a JSON object of the form {"message": "..."}.
package http
