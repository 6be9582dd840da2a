// Package courtlistener is an HTTP client for the CourtListener REST API
// (v4). API docs: https://www.courtlistener.com/help/api/rest/v4
//
// Every list endpoint returns the same envelope: a "results" array and a
// "next" link that is null once pagination is exhausted. The client
// fetches one page at a time and maps HTTP failures onto the scraper's
// error taxonomy; retry policy lives with the caller.
package courtlistener
