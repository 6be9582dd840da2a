// Package ratelimit enforces the CourtListener request budget.
//
// The API restricts authenticated clients to a fixed number of requests
// per day. The token bucket hands out one token per request and refills
// when the budget period rolls over; Wait blocks the fetch loop until a
// token is available or the context is cancelled.
package ratelimit
