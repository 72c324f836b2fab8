package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// googleCertsURL serves the x509 certificates Google signs securetoken ID
// tokens with, keyed by kid.
const googleCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

const certRefreshInterval = time.Hour

// IdentityClaims carries the verified subject of a federated ID token.
type IdentityClaims struct {
	UID   string
	Email string
}

// IdentityVerifier validates a federated identity token and extracts its
// subject. Implementations must check signature, issuer, audience and expiry.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*IdentityClaims, error)
}

type idTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GoogleIdentityVerifier verifies Firebase/Google ID tokens against the
// public securetoken certificates, cached between refreshes.
type GoogleIdentityVerifier struct {
	projectID  string
	certsURL   string
	httpClient *http.Client

	mu          sync.Mutex
	keys        map[string]*rsa.PublicKey
	refreshedAt time.Time
}

// NewGoogleIdentityVerifier builds a verifier for tokens issued to projectID.
func NewGoogleIdentityVerifier(projectID string) *GoogleIdentityVerifier {
	return &GoogleIdentityVerifier{
		projectID:  projectID,
		certsURL:   googleCertsURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithCertsURL overrides the certificate endpoint. Used in tests.
func (v *GoogleIdentityVerifier) WithCertsURL(url string) *GoogleIdentityVerifier {
	v.certsURL = url
	return v
}

// VerifyIDToken checks the token's RS256 signature, issuer, audience and
// expiry, and returns its uid and email claims.
func (v *GoogleIdentityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*IdentityClaims, error) {
	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no kid header")
		}
		key, err := v.publicKey(ctx, kid)
		if err != nil {
			return nil, err
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid id token")
	}
	if iss := "https://securetoken.google.com/" + v.projectID; claims.Issuer != iss {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	if !claims.VerifyAudience(v.projectID, true) {
		return nil, errors.New("unexpected audience")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &IdentityClaims{UID: claims.Subject, Email: claims.Email}, nil
}

func (v *GoogleIdentityVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.refreshedAt) < certRefreshInterval {
		return key, nil
	}
	if err := v.refreshLocked(ctx); err != nil {
		return nil, err
	}
	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for kid %q", kid)
	}
	return key, nil
}

func (v *GoogleIdentityVerifier) refreshLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("build certs request: %w", err)
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch certs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch certs: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read certs: %w", err)
	}

	var pems map[string]string
	if err := json.Unmarshal(body, &pems); err != nil {
		return fmt.Errorf("decode certs: %w", err)
	}
	keys := make(map[string]*rsa.PublicKey, len(pems))
	for kid, certPEM := range pems {
		block, _ := pem.Decode([]byte(certPEM))
		if block == nil {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			continue
		}
		if pub, ok := cert.PublicKey.(*rsa.PublicKey); ok {
			keys[kid] = pub
		}
	}
	if len(keys) == 0 {
		return errors.New("no usable certificates")
	}
	v.keys = keys
	v.refreshedAt = time.Now()
	return nil
}

// ProjectIDFromCredentials extracts the project id from service account
// credentials, preferring inline JSON over the file path.
func ProjectIDFromCredentials(inlineJSON, filePath string) (string, error) {
	raw := []byte(inlineJSON)
	if inlineJSON == "" {
		var err error
		raw, err = os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read service account file: %w", err)
		}
	}
	var creds struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(raw, &creds); err != nil {
		return "", fmt.Errorf("decode service account credentials: %w", err)
	}
	if creds.ProjectID == "" {
		return "", errors.New("service account credentials have no project_id")
	}
	return creds.ProjectID, nil
}
