// Package branding holds product naming shared by every surface.
package branding

// AppName is the product name shown in titles, sidebars and MCP metadata.
const AppName = "AdPulse"
