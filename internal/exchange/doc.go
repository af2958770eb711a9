// Package exchange provides read-only access to Binance 24h ticker statistics.
//
// REST endpoints:
//   - GET /api/v3/ticker/24hr              all symbols
//   - GET /api/v3/ticker/24hr?symbol=XYZ   one symbol
//
// Failures never surface as errors: FetchTopCoins returns an empty list and
// FetchCoinDetail reports the record as absent.
package exchange
