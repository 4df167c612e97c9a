// Package year decides the release year printed on each card.
//
// Catalog metadata is noisy: compilations, remasters and reissues carry the
// year of the reissue rather than the year the song came out. The Reconciler
// works in three explicit steps, each returning a log of changes:
//
//  1. Corroborate: tracks whose raw title mentions a remaster or an edition
//     are searched again in the catalog; an earlier year found there wins.
//  2. Verify: tracks with a suspicious year are checked against an external
//     lookup service, bounded by a lookup budget. Verify only proposes
//     changes; ApplyVerified commits them.
//  3. ApplyOverrides: operator-entered years replace any computed value.
//
// A year is suspicious when it cannot be parsed, when it is after 2020, or
// when it is after 2010 and the artist matches a list of classic-era names.
//
// Review lists the tracks whose year falls outside an operator-chosen range
// so they can be corrected by hand.
//
// The decision logic is pure. External calls go through the Lookup and
// Searcher interfaces supplied by the caller.
package year
