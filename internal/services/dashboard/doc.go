// Package dashboard hosts the browser-facing analytics dashboard.
//
// Pages are server-rendered templ components; interactive pieces (the
// campaigns table, its View menu, the command palette) post HTMX events and
// receive re-rendered fragments. Each browser session owns one campaigns
// table engine held in memory, while the appearance preference is persisted
// in sqlite keyed by the session cookie.
package dashboard
