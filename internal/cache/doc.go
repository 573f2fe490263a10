// Package cache keeps short-lived API responses on disk so repeated catalogue
// lookups (brand search while typing) do not hit the backend every keystroke.
//
// Entries are JSON files named by the SHA-256 of their key and expire after a
// fixed TTL. A disabled Store is valid and simply misses on every read.
package cache
