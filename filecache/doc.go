/*
Package filecache provides a freshness-aware file cache that sits in front of
any remote data source.

A data source participates by implementing the Loadable capability: it derives
a cache Key for a given input, performs the actual remote fetch, and names the
category under which its artifacts are stored. The Cache engine then decides,
per call, whether a previously persisted artifact is still usable before the
network is touched.

# Keys and freshness

A Key carries an optional stable content key (a logical name such as a resource
identifier) and an optional content hash (a fingerprint of the current remote
content, typically an ETag). A Loadable may rely on either discipline:

  - TTL freshness: set only the content key and let the engine's max age decide
    when the artifact is stale.
  - Fingerprint freshness: embed the remote fingerprint in the key, so any
    content change resolves to a new file and the old artifact is orphaned.

The engine is policy-agnostic; it only derives a deterministic on-disk path
from (category, content key, content hash) and compares file modification time
against the configured max age.

# Basic usage

	cache := filecache.New[string, Response](client,
	    filecache.WithRoot(".cache"),
	    filecache.WithMaxAge(24*time.Hour),
	)

	res, err := cache.Load(ctx, "AmazonEC2")
	if err != nil {
	    log.Fatalf("load failed: %v", err)
	}
	if res.Hit {
	    fmt.Println("served from cache")
	}

Artifacts are stored as UTF-8 JSON, one file per key, under
{root}/{category}/{filename}.json. The engine exclusively owns files under its
root directory.
*/
package filecache
