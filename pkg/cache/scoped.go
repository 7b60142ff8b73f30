package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or
// versions can share one Redis instance without colliding.
//
// Example usage:
//
//	// Server keys, invalidated on every release
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "wordcloud:"+buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// WordsKey generates a prefixed key for counted words.
func (k *ScopedKeyer) WordsKey(textHash string, topN int) string {
	return k.prefix + k.inner.WordsKey(textHash, topN)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(wordsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
