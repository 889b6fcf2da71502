// Package cocreate embeds the CoCreate marketplace search engine in a Go program.
//
// The client ranks listings from a catalog file or an in-memory slice and keeps
// the recent-search history in memory, Badger, Valkey or Redis.
//
//	client, _ := cocreate.New(ctx, cocreate.WithCatalogFile("data/items.json"))
//	defer client.Close()
//	hits, _ := client.Search(ctx, "oak planks", &cocreate.SearchOptions{
//	    Category: "Wood",
//	    MaxPrice: 50,
//	    Sort:     cocreate.SortPriceLow,
//	})
//	recent, _ := client.RecentSearches(ctx)
package cocreate
