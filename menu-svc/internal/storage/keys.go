package storage

const DefaultKeyPrefix = "cafe-menu"

// snapshotVersion is bumped when the stored menu layout changes so old
// snapshots are ignored instead of misread.
const snapshotVersion = "v2"

type keySet struct {
	snapshot   string
	cachedAt   string
	session    string
	credential string
	verifier   string
}

func newKeySet(prefix string) keySet {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return keySet{
		snapshot:   prefix + ":" + snapshotVersion + ":snapshot",
		cachedAt:   prefix + ":cached_at",
		session:    prefix + ":admin:session",
		credential: prefix + ":admin:credential",
		verifier:   prefix + ":admin:verifier",
	}
}
