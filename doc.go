// Package catsearch embeds the catalog search engine in a Go program.
//
// A Client searches items and recipes of a mod combination, merges the
// matches into one ordered result set and caches that set in a compact
// binary form keyed by the query hash.
//
//	client, _ := catsearch.New(ctx,
//	    catsearch.WithCatalog("catalog.db"),
//	    catsearch.WithSQLiteCache("cache.db"),
//	)
//	defer client.Close()
//
//	page, _ := client.Search(ctx, combinationID, "de", "eisen platte", 1, 20)
//	for _, r := range page.Results {
//	    fmt.Println(r.Type, r.Name)
//	}
package catsearch
