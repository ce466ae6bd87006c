// Package hearings indexes United States Congressional committee hearings.
// It walks the document repository's year sitemaps, reads each hearing's MODS
// metadata and transcript, and stores the combined record in a search index
// exactly once per hearing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, elasticsearch/, etree/).
package hearings
