// Package domain defines the campaign MCP tools and resources.
//
// Handlers build a fresh table engine per call, seed it from the tool
// arguments with the same filter and order_by syntax the dashboard uses in
// its URLs, and return the projected page or its CSV export.
package domain
