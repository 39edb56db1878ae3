// Package feed queries a NuGet v3 feed's search endpoint with a bearer
// token and picks the newest published version of each hit.
package feed
