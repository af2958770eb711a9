// Package gateway calls the fixed, parameterless endpoints of the internal
// tool service (Douyin downloader, caption generator, trending keywords).
//
// Every call returns a model.GatewayResult. An empty result is the only
// failure signal; failed HTTP calls are logged with a truncated body.
package gateway
