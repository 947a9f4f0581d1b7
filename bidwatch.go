// Package bidwatch monitors a public procurement feed for bid-candidate
// announcements. It fetches announcement documents, extracts structured
// records (project name, publicity window, ranked bidder/price pairs) from
// their inconsistently structured HTML bodies, persists raw and parsed forms,
// and renders notifications for newly observed announcements.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package bidwatch
