package identity

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/handiism/hitster-cards/internal/model"
)

const (
	// TokenLength is the number of hex characters kept from the digest.
	TokenLength = 12

	// Scheme prefixes every playback URI.
	Scheme = "spotify"

	defaultKind = "track"
)

// ErrMalformedReference is returned for references without a trailing identifier.
var ErrMalformedReference = errors.New("malformed track reference")

// Token returns the identity token of a canonical reference.
func Token(ref string) string {
	sum := sha256.Sum256([]byte(ref))
	return hex.EncodeToString(sum[:])[:TokenLength]
}

// Reference is a parsed catalog reference.
type Reference struct {
	Kind string
	ID   string
}

// URI returns the compact "spotify:<kind>:<id>" form.
func (r Reference) URI() string {
	return Scheme + ":" + r.Kind + ":" + r.ID
}

// ParseReference extracts the kind and identifier from a catalog URL
// ("https://open.spotify.com/track/<id>?si=...") or URI ("spotify:track:<id>").
func ParseReference(ref string) (Reference, error) {
	ref = strings.TrimSpace(ref)

	if strings.HasPrefix(ref, Scheme+":") {
		parts := strings.Split(ref, ":")
		if len(parts) == 3 && isIdentifier(parts[1]) && isIdentifier(parts[2]) {
			return Reference{Kind: parts[1], ID: parts[2]}, nil
		}
		return Reference{}, fmt.Errorf("%w: %q", ErrMalformedReference, ref)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %v", ErrMalformedReference, err)
	}
	segments := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")

	id := segments[len(segments)-1]
	kind := defaultKind
	if len(segments) > 1 {
		kind = segments[len(segments)-2]
	}
	if !isIdentifier(kind) || !isIdentifier(id) {
		return Reference{}, fmt.Errorf("%w: %q", ErrMalformedReference, ref)
	}
	return Reference{Kind: kind, ID: id}, nil
}

// isIdentifier reports whether s is a non-empty ASCII alphanumeric segment.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// EncodePayload encodes a playback URI with padded URL-safe base64.
func EncodePayload(uri string) string {
	return base64.URLEncoding.EncodeToString([]byte(uri))
}

// DecodePayload reverses EncodePayload. Missing padding is tolerated.
func DecodePayload(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	data, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return "", fmt.Errorf("decode payload: %w", err)
		}
	}
	return string(data), nil
}

// ArtifactName returns the temporary code image file name for a card ordinal.
// The ordinal namespaces files only; it never affects the token.
func ArtifactName(ordinal int) string {
	return fmt.Sprintf("hitster_track_%d_qr.png", ordinal)
}

// Encoder builds code faces pointing at a player page.
type Encoder struct {
	playerURL string
}

// NewEncoder creates an Encoder for the player page at playerURL.
func NewEncoder(playerURL string) *Encoder {
	return &Encoder{playerURL: strings.TrimRight(strings.TrimSpace(playerURL), "/")}
}

// Encode derives the code face of a track reference.
func (e *Encoder) Encode(ref string) (model.CodeFace, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return model.CodeFace{}, err
	}

	token := Token(ref)
	payload := EncodePayload(parsed.URI())
	return model.CodeFace{
		Token:   token,
		Payload: payload,
		Content: fmt.Sprintf("%s/index.html?id=%s&track=%s", e.playerURL, token, payload),
	}, nil
}

// Decoded is the information recovered from a scanned code.
type Decoded struct {
	Token string
	URI   string
}

// Decode recovers the token and playback URI from scanned code content.
func Decode(content string) (Decoded, error) {
	u, err := url.Parse(strings.TrimSpace(content))
	if err != nil {
		return Decoded{}, fmt.Errorf("parse code content: %w", err)
	}

	// Payloads are not query-escaped, so '+' never appears and '=' padding is
	// kept intact by ParseQuery splitting on the first '=' only.
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return Decoded{}, fmt.Errorf("parse code query: %w", err)
	}

	payload := query.Get("track")
	if payload == "" {
		return Decoded{}, fmt.Errorf("%w: no track parameter", ErrMalformedReference)
	}
	uri, err := DecodePayload(payload)
	if err != nil {
		return Decoded{}, err
	}
	if _, err := ParseReference(uri); err != nil {
		return Decoded{}, err
	}
	return Decoded{Token: query.Get("id"), URI: uri}, nil
}
