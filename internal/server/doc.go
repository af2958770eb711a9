// Package server exposes the exchange client and the tool gateway over HTTP.
//
// Routes:
//   - GET /api/coins/top           top coins by quote volume (JSON array)
//   - GET /api/coins/{symbol}      one ticker, 404 when absent
//   - GET /api/tools/douyin        Douyin downloader result
//   - GET /api/tools/caption       caption generator result
//   - GET /api/tools/trending      trending keywords result
//   - GET /health                  liveness and build info
package server
