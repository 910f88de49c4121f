// Package media resolves stored video references to consumable delivery URLs
// using Cloudinary's URL-based transformation contract: a transformation
// segment inserted after /upload/ is applied by the host at delivery time.
package media

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const uploadSegment = "/upload/"

// watermarkTransform renders a semi-transparent text overlay repeated in the
// south-east corner. The %s is the escaped viewer identity.
const watermarkTransform = "l_text:arial_24:%s,co_white,o_40,g_south_east,x_20,y_20"

// Resolver implements watermarked URL resolution against a Cloudinary-style
// media host. Resolution fails softly: any URL that cannot be transformed is
// returned unchanged rather than failing the request.
type Resolver struct {
	log zerolog.Logger
}

func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{log: log}
}

// ResolveVideoURL returns rawURL with a viewer-identity watermark overlay
// embedded, or rawURL unchanged when no viewer email is given or the URL does
// not follow the host's upload-path convention.
func (r *Resolver) ResolveVideoURL(rawURL, viewerEmail string) string {
	if viewerEmail == "" || rawURL == "" {
		return rawURL
	}

	if _, err := url.Parse(rawURL); err != nil {
		r.log.Warn().Err(err).Str("url", rawURL).Msg("unparseable video url, serving unwatermarked")
		return rawURL
	}

	idx := strings.Index(rawURL, uploadSegment)
	if idx < 0 {
		r.log.Debug().Str("url", rawURL).Msg("video url without upload segment, serving as-is")
		return rawURL
	}

	overlay := fmt.Sprintf(watermarkTransform, escapeOverlayText(viewerEmail))
	return rawURL[:idx] + uploadSegment + overlay + "/" + rawURL[idx+len(uploadSegment):]
}

// escapeOverlayText encodes characters that are significant in a Cloudinary
// transformation segment. Commas and slashes delimit transformation
// parameters, so they must be percent-encoded twice over.
func escapeOverlayText(text string) string {
	escaped := url.QueryEscape(text)
	escaped = strings.ReplaceAll(escaped, "%2C", "%252C")
	escaped = strings.ReplaceAll(escaped, "%2F", "%252F")
	return escaped
}
