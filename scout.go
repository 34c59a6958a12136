// Package scout locates a company's official website from a name or URL,
// collects a handful of relevant pages from it, and asks a language model to
// extract structured company facts from the collected text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, duckduckgo/).
package scout
