// Package registry implements the REST client for the downstream
// asset-management registry (the system of record).
//
// The registry paginates every collection as {count, next, results};
// listing follows next links until null, accumulating results. Creation
// is a POST to the collection endpoint, update a PATCH to the member
// endpoint. A static token credential is attached to every request.
//
// List, Create and Update are generic over the decoded result type so the
// resolver and pipeline reuse one transport path for every entity kind.
package registry
