// Package http exposes the notes read API on a chi router.
//
// Routes mount under the configured base path (default /api):
//   - Search: /search.json (full index), /search?q=&limit=
//   - Distill: /distill?prefix=&mode=, /distill/export?prefix=&format=
//   - Navigation: /tree, /folders?folder=&recursive=, /workspaces, /workspaces/{key}
//   - Notes: /notes/outline?slug=
//
// Host applications can mount Router() or call Register on their own router.
package http
