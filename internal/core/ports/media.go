package ports

// MediaResolver maps stored video references to consumable URLs. When a
// viewer email is given, the returned URL embeds a visible watermark overlay
// of the viewer's identity. Resolution fails softly: implementations fall
// back to the raw URL rather than failing the request.
type MediaResolver interface {
	ResolveVideoURL(rawURL, viewerEmail string) string
}
