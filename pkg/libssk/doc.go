// Package libssk is a client that interacts with the Shishikan API, the food lists sharing service.
//
// It also holds the search primitives shared by the server and the clients:
// the filter expressions understood by the search index and the InfiniteHits
// adapter that turns paginated search results into a growing list of hits.
//
// Create client
//
//	client, err := libssk.NewDefaultClient("https://shishikan.example.com")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Sign in
//
//	// The ID token is obtained from Google Sign-In.
//	user, err := client.AuthenticateWithGoogle(ctx, idToken)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Browse a list
//
//	list, err := client.List(ctx, "6b5c0c4e-8a35-4c56-9d0b-8f0e7f5a8a1e")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	params := libssk.SearchParams{
//		Filters:     libssk.FoodFromList(list.ID, list.User.ID),
//		HitsPerPage: 8,
//	}
//
//	hits := libssk.NewInfiniteHits(client, params, 8)
//	for hit, err := range hits.All(ctx) {
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(hit.Name, hit.Verdict)
//	}
package libssk
