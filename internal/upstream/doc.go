// Package upstream provides the shared HTTP GET primitive used by the
// exchange client and the tool service gateway.
//
// Each request carries an X-Request-ID header so upstream logs can be
// correlated with ours. No retries are performed.
package upstream
