// Package title strips decorative suffixes from track titles.
//
// Catalog titles frequently carry release noise that would give away or
// clutter the answer printed on a card:
//
//	"Bohemian Rhapsody - Remastered 2011"   -> "Bohemian Rhapsody"
//	"My Heart Will Go On (From 'Titanic')"  -> "My Heart Will Go On"
//	"Dreams (2004 Remaster) (Deluxe Edition)" -> "Dreams (2004 Remaster)"
//
// The removable parts are described declaratively by Pattern values
// (match kind + anchor + keyword) rather than inline regular expressions, so
// the list can be tested, reordered or localized as data. DefaultPatterns
// returns the built-in list in application order.
//
// Normalization is idempotent: Normalize(Normalize(s)) == Normalize(s).
package title
